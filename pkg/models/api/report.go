package api

import (
	"encoding/json"
	"time"
)

type Row struct {
	Level  string    `json:"level"`
	Values []float64 `json:"values"`
}

type Table struct {
	Title   string   `json:"title"`
	Kind    string   `json:"kind"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Tables      []Table   `json:"tables"`
}

// ReportConfig mirrors the run configuration; omitted fields keep their defaults.
type ReportConfig struct {
	FileName     string  `json:"file_name,omitempty"`
	IncludeAreas *bool   `json:"include_areas,omitempty"`
	IncludeRooms *bool   `json:"include_rooms,omitempty"`
	NUA          *string `json:"nua_list,omitempty"`
	NIA          *string `json:"nia_list,omitempty"`
	NLA          *string `json:"nla_list,omitempty"`
	GIA          *string `json:"gia_list,omitempty"`
	GEA          *string `json:"gea_list,omitempty"`
	GLA          *string `json:"gla_list,omitempty"`
	GBA          *string `json:"gba_list,omitempty"`
}

// ReportRequest carries the model either as a root object or as an array of elements.
type ReportRequest struct {
	Config   ReportConfig    `json:"config"`
	Elements json.RawMessage `json:"elements"`
}

type ReportResponse struct {
	Run      Run      `json:"run"`
	Report   *Report  `json:"report,omitempty"`
	Files    []string `json:"files,omitempty"`
	Location string   `json:"location,omitempty"`
}

type Error struct {
	Error string `json:"error"`
	Stage string `json:"stage,omitempty"`
	Hint  string `json:"hint,omitempty"`
}
