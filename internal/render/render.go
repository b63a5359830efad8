package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Dicklesworthstone/network_traffic_monitor/internal/model"
)

// Renderer turns one sample into user-facing output. The driver picks one
// variant at startup and calls it every tick; variants are interchangeable.
type Renderer interface {
	Render(model.Sample)
}

// Text writes one human-readable line per tick.
type Text struct {
	Out io.Writer
}

func NewText(out io.Writer) *Text { return &Text{Out: out} }

func (r *Text) Render(s model.Sample) {
	fmt.Fprintf(r.Out, "[%s] OUT %s | IN %s | TOTAL %s/%s\n",
		s.Timestamp.Format("15:04:05"),
		Humanize(s.SentRate, true),
		Humanize(s.RecvRate, true),
		Humanize(float64(s.TotalSent), false),
		Humanize(float64(s.TotalRecv), false))
}

// Record writes one JSON object per tick, one per line, for downstream
// parsing.
type Record struct {
	enc *json.Encoder
}

func NewRecord(out io.Writer) *Record { return &Record{enc: json.NewEncoder(out)} }

func (r *Record) Render(s model.Sample) {
	// Samples hold only finite floats and plain types; encoding cannot fail
	// short of a broken writer.
	_ = r.enc.Encode(s)
}
