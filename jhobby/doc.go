// Package jhobby implements John Hobby's spline interpolation algorithm for
// paths through a sequence of knots, as known from MetaFont and MetaPost.
/*

Spline interpolation by Hobby's algorithm results in aesthetically pleasing
curves superior to "normal" spline interpolation. The primary source of
information for "Hobby-splines" is:

   Smooth, Easy to Compute Interpolating Splines -- John D. Hobby
   Computer Science Dept. Stanford University
   Report No. STAN-CS-85-1047, Jan 1985

The practical algorithm is explained in

   Computers & Typesetting, Vol. B & D.

The renderers of this module use it to turn the sampled viewing-angle arc
into a few smooth cubic Bézier segments instead of a jagged polyline.

Usage

Clients build a "skeleton" path, without any spline control point
information, with a builder pattern:

   path := Nullpath().Knot(P(1,1)).Knot(P(2,2)).Knot(P(3,1)).Knot(P(2,0)).Cycle()

or, for an open path through a list of points:

   path := Through(points...)

Tension is uniform over all joins of a path, curl at the end points of an
open path is 1. A built path is then subjected to a call to
FindHobbyControls(...)

   spline, err := FindHobbyControls(path)

which returns the control points of a smooth curve:

  (1,1) .. controls (1.0000,1.5523) and (1.4477,2.0000)
    .. (2,2) .. controls (2.5523,2.0000) and (3.0000,1.5523)
    .. (3,1) .. controls (3.0000,0.4477) and (2.5523,0.0000)
    .. (2,0) .. controls (1.4477,0.0000) and (1.0000,0.4477)
    .. cycle

Explicit directions, curls or control points at individual knots are not
supported.

BSD License

Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package jhobby
