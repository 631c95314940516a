package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/fmea/internal/fmea"
	"github.com/abhisek/fmea/internal/input"
	"github.com/abhisek/fmea/internal/observability"
	"github.com/abhisek/fmea/internal/report"
)

// errorDetail is the wire form of one validation problem.
type errorDetail struct {
	Kind     string   `json:"kind"`
	Position int      `json:"position,omitempty"`
	Field    string   `json:"field,omitempty"`
	Value    *int     `json:"value,omitempty"`
	Names    []string `json:"names,omitempty"`
	Message  string   `json:"message"`
}

func details(errs fmea.ValidationErrors) []errorDetail {
	out := make([]errorDetail, len(errs))
	for i, e := range errs {
		d := errorDetail{
			Kind:     e.Kind.String(),
			Position: e.Position,
			Field:    e.Field,
			Names:    e.Names,
			Message:  e.Error(),
		}
		if e.Kind == fmea.KindInvalidRating {
			v := e.Value
			d.Value = &v
		}
		out[i] = d
	}
	return out
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) notes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title": report.NotesTitle,
		"notes": report.Notes(),
		"items": report.GuidanceNotes(),
	})
}

func (s *Server) assess(c *gin.Context) {
	doc, res, ok := s.run(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.New(doc.Title, res))
}

func (s *Server) heatmap(c *gin.Context) {
	_, res, ok := s.run(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := report.RenderHeatmap(&buf, res.Heatmap, s.cfg.Heatmap); err != nil {
		s.log.Errorw("render heatmap", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render heatmap"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// run decodes the request body and assesses it. On failure it writes the
// error response and returns ok=false.
func (s *Server) run(c *gin.Context) (*input.Document, *fmea.Result, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	data, err := io.ReadAll(body)
	if err != nil {
		s.metrics.RecordRejected(observability.OutcomeMalformed)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return nil, nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return nil, nil, false
	}

	doc, err := input.Parse(data, input.FormatJSON)
	if err != nil {
		s.metrics.RecordRejected(observability.OutcomeMalformed)
		s.log.Debugw("malformed document", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, nil, false
	}

	start := time.Now()
	res, err := fmea.Assess(doc.Entries())
	if err != nil {
		var verrs fmea.ValidationErrors
		if !errors.As(err, &verrs) {
			s.log.Errorw("assess", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment failed"})
			return nil, nil, false
		}
		s.metrics.RecordRejected(observability.OutcomeInvalid)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors":  verrs.Messages(),
			"details": details(verrs),
		})
		return nil, nil, false
	}
	s.metrics.RecordAssessment(res, time.Since(start))
	s.log.Infow("assessed", "title", doc.Title, "summary", report.Summary(res))

	return doc, res, true
}
