// Package contact validates contact form submissions and hands them to the
// form relay.
package contact

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tradesy30/portfolio/internal/logger"
	"github.com/tradesy30/portfolio/internal/relay"
)

// Submission is the contact form as posted by the browser.
type Submission struct {
	Name    string `form:"name" json:"name" validate:"min=2"`
	Email   string `form:"email" json:"email" validate:"email"`
	Message string `form:"message" json:"message" validate:"min=10"`
}

// Field messages, keyed by form field name.
var fieldMessages = map[string]string{
	"name":    "Name must be at least 2 characters",
	"email":   "Please enter a valid email address",
	"message": "Message must be at least 10 characters",
}

// fieldOrder is the order the form renders its fields in.
var fieldOrder = []string{"name", "email", "message"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// ValidationError maps form field names to user-facing messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid form data: " + e.First()
}

// First is the message of the first failing field in form order.
func (e *ValidationError) First() string {
	for _, name := range fieldOrder {
		if msg, ok := e.Fields[name]; ok {
			return msg
		}
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return e.Fields[keys[0]]
}

// Validate checks the submission. It returns nil or a *ValidationError.
func (s Submission) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validate submission: %w", err)
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		name := fe.Field()
		msg, ok := fieldMessages[name]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", name)
		}
		fields[name] = msg
	}
	return &ValidationError{Fields: fields}
}

// Meta describes where a submission came from.
type Meta struct {
	HashedIP  string
	RequestID string
}

// Sender delivers a validated submission.
type Sender interface {
	Send(ctx context.Context, msg relay.Message) error
}

// Recorder persists the outcome of a submission.
type Recorder interface {
	RecordSubmission(ctx context.Context, rec Record) error
}

// Record is one submission and its delivery outcome.
type Record struct {
	HashedIP  string
	Name      string
	Email     string
	Message   string
	Delivered bool
	Error     string
	CreatedAt time.Time
}

type Service struct {
	log    *logger.Logger
	sender Sender
	rec    Recorder
	now    func() time.Time
}

// NewService wires the relay and an optional recorder.
func NewService(log *logger.Logger, sender Sender, rec Recorder) *Service {
	return &Service{
		log:    log.With("service", "ContactService"),
		sender: sender,
		rec:    rec,
		now:    time.Now,
	}
}

// Submit validates sub and relays it once. Validation failures never reach
// the relay.
func (s *Service) Submit(ctx context.Context, sub Submission, meta Meta) error {
	if err := sub.Validate(); err != nil {
		s.log.Debug("contact submission rejected", "request_id", meta.RequestID, "error", err.Error())
		return err
	}

	sendErr := s.sender.Send(ctx, relay.Message{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
		Subject: "Portfolio Contact: " + strings.TrimSpace(sub.Name),
		ReplyTo: sub.Email,
	})

	rec := Record{
		HashedIP:  meta.HashedIP,
		Name:      sub.Name,
		Email:     sub.Email,
		Message:   sub.Message,
		Delivered: sendErr == nil,
		CreatedAt: s.now().UTC(),
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	if s.rec != nil {
		if err := s.rec.RecordSubmission(ctx, rec); err != nil {
			s.log.Warn("failed to record contact submission (ignored)", "request_id", meta.RequestID, "error", err)
		}
	}

	if sendErr != nil {
		s.log.Error("contact submission relay failed", "request_id", meta.RequestID, "error", sendErr)
		return fmt.Errorf("relay submission: %w", sendErr)
	}
	s.log.Info("contact submission relayed", "request_id", meta.RequestID, "email", sub.Email)
	return nil
}
