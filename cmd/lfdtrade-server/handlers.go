package main

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"path"
	"strings"

	"github.com/npillmayer/lfdtrade/internal/config"
	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/lfdtrade/render/raster"
	"github.com/npillmayer/lfdtrade/render/svg"
	"github.com/npillmayer/lfdtrade/scene"
	"github.com/npillmayer/lfdtrade/selector"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'server'
func tracer() tracing.Trace {
	return tracing.Select("server")
}

// Header is the heading of the page.
const Header = "Light Field Display Spatial/Angular Trade Analysis"

//go:embed index.html
var indexHTML string

type server struct {
	cfg  config.Config
	page *template.Template
}

func newServer(cfg config.Config) *server {
	return &server{
		cfg:  cfg,
		page: template.Must(template.New("index").Parse(indexHTML)),
	}
}

// presetOf reads the "preset" query parameter. Missing values select the
// configured default, unknown values select Tablet.
func (s *server) presetOf(r *http.Request) preset.Key {
	v := r.URL.Query().Get("preset")
	if v == "" {
		return s.cfg.Preset()
	}
	k, err := preset.ParseKey(v)
	if err != nil {
		tracer().Infof("%v, using %s", err, preset.Tablet)
		return preset.Tablet
	}
	return k
}

func (s *server) selection(w http.ResponseWriter, r *http.Request) (*selector.Selection, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	k := s.presetOf(r)
	sel, err := selector.SelectOrPlaceholder(k)
	if err != nil {
		tracer().Errorf("select %s: %v", k, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return sel, true
}

// --- Page ------------------------------------------------------------------

type option struct {
	Code, Name string
	Checked    bool
}

type row struct {
	Label, Value string
}

type pageData struct {
	Header    string
	Options   []option
	Top, Side template.HTML
	Rows      []row
}

func (s *server) pageHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	data := pageData{Header: Header}
	for _, k := range preset.Keys() {
		data.Options = append(data.Options, option{Code: k.Code(), Name: k.String(), Checked: k == sel.Key})
	}
	var err error
	if data.Top, err = inlineSVG(sel.Top); err == nil {
		data.Side, err = inlineSVG(sel.Side)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, rw := range sel.Table {
		data.Rows = append(data.Rows, row{Label: rw.Label, Value: rw.Text()})
	}
	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		tracer().Errorf("page template: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tracer().Infof("serving page for %s", sel.Key)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func inlineSVG(sc scene.Scene) (template.HTML, error) {
	var buf bytes.Buffer
	if err := svg.Render(&buf, sc); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// --- Diagrams --------------------------------------------------------------

// sceneHandler serves /scene/{top,side}.{svg,png,webp,tga}.
func (s *server) sceneHandler(w http.ResponseWriter, r *http.Request) {
	name := path.Base(r.URL.Path)
	view, ext, _ := strings.Cut(name, ".")
	if view != "top" && view != "side" {
		http.NotFound(w, r)
		return
	}
	var format raster.Format
	if ext != "svg" {
		var err error
		if format, err = raster.ParseFormat(ext); err != nil {
			http.NotFound(w, r)
			return
		}
	}
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	sc := sel.Top
	if view == "side" {
		sc = sel.Side
	}
	var buf bytes.Buffer
	var err error
	contentType := svg.ContentType
	if format == "" {
		err = svg.Render(&buf, sc)
	} else {
		contentType = format.ContentType()
		err = raster.Render(&buf, sc, format, s.cfg.RasterOptions())
	}
	if err != nil {
		tracer().Errorf("render %s of %s: %v", name, sel.Key, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	tracer().Infof("serving %s for %s", name, sel.Key)
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}

// --- JSON ------------------------------------------------------------------

type rowJSON struct {
	Label string   `json:"label"`
	Value *float64 `json:"value"` // null if not available
	Text  string   `json:"text"`
}

type sceneJSON struct {
	Title      string         `json:"title"`
	XRange     [2]float64     `json:"xRange"`
	YRange     [2]float64     `json:"yRange"`
	Primitives int            `json:"primitives"`
	Classes    map[string]int `json:"classes"`
}

type selectionJSON struct {
	Preset      string    `json:"preset"`
	Name        string    `json:"name"`
	Placeholder bool      `json:"placeholder"`
	Table       []rowJSON `json:"table"`
	Top         sceneJSON `json:"top"`
	Side        sceneJSON `json:"side"`
}

func (s *server) selectionHandler(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		return
	}
	resp := selectionJSON{
		Preset:      sel.Key.Code(),
		Name:        sel.Key.String(),
		Placeholder: sel.Top.IsEmpty(),
		Top:         sceneSummary(sel.Top),
		Side:        sceneSummary(sel.Side),
	}
	for _, rw := range sel.Table {
		rj := rowJSON{Label: rw.Label, Text: rw.Text()}
		if rw.Available() {
			v := rw.Value
			rj.Value = &v
		}
		resp.Table = append(resp.Table, rj)
	}
	if err := writeJSON(w, resp); err != nil {
		tracer().Errorf("encode selection of %s: %v", sel.Key, err)
	}
}

// writeJSON sets the content type and encodes v as the response body.
func writeJSON(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func sceneSummary(sc scene.Scene) sceneJSON {
	sj := sceneJSON{
		Title:      sc.Title,
		XRange:     sc.XRange,
		YRange:     sc.YRange,
		Primitives: sc.Len(),
		Classes:    map[string]int{},
	}
	for _, p := range sc.Primitives() {
		sj.Classes[scene.ClassOf(p)]++
	}
	return sj
}
