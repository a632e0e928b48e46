package dto

import "mdt-records-be/pkg/reactive"

// Client -> server message types.
const (
	ClientSearch  = "search"
	ClientFlush   = "flush"
	ClientDispose = "dispose"
	ClientReset   = "reset"
	ClientWatch   = "watch"
	ClientUnwatch = "unwatch"
)

// Server -> client message types.
const (
	ServerSearchState = "search_state"
	ServerViewRows    = "view_rows"
	ServerInvalidate  = "invalidate"
	ServerError       = "error"
)

type ClientMessage struct {
	Type  string `json:"type"`
	Field string `json:"field,omitempty"`
	Query string `json:"query,omitempty"`
	View  string `json:"view,omitempty"`
}

type SearchStateMessage struct {
	Type     string               `json:"type"`
	Field    string               `json:"field"`
	Query    string               `json:"query"`
	Token    uint64               `json:"token"`
	Status   reactive.Status      `json:"status"`
	Results  []reactive.Candidate `json:"results"`
	Error    string               `json:"error,omitempty"`
	Revision uint64               `json:"revision"`
}

func NewSearchStateMessage(s reactive.Snapshot) SearchStateMessage {
	msg := SearchStateMessage{
		Type:     ServerSearchState,
		Field:    s.Field,
		Query:    s.Query,
		Token:    s.Token,
		Status:   s.Status,
		Results:  s.Results,
		Revision: s.Revision,
	}
	if msg.Results == nil {
		msg.Results = []reactive.Candidate{}
	}
	if s.Err != nil {
		msg.Error = s.Err.Error()
	}
	return msg
}

type ViewRowsMessage struct {
	Type     string      `json:"type"`
	View     string      `json:"view"`
	Rows     interface{} `json:"rows"`
	Error    string      `json:"error,omitempty"`
	Revision uint64      `json:"revision"`
}

type InvalidateMessage struct {
	Type string `json:"type"`
	View string `json:"view"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorMessage(err error) ErrorMessage {
	return ErrorMessage{Type: ServerError, Message: err.Error()}
}
