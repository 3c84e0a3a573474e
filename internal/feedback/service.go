// Package feedback stores contact-page messages for the admin to read.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/angelmondragon/friendsofall-backend/pkg/errors"
	"github.com/angelmondragon/friendsofall-backend/pkg/ids"
	"github.com/angelmondragon/friendsofall-backend/pkg/kvstore"
	"github.com/angelmondragon/friendsofall-backend/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// DefaultRating applies when the visitor leaves the stars untouched.
const DefaultRating = 5

// Feedback is one contact-page submission.
type Feedback struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Message     string    `json:"message"`
	Rating      int       `json:"rating"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Input is the contact form.
type Input struct {
	Name    string `validate:"required,max=120"`
	Email   string `validate:"omitempty,email"`
	Phone   string `validate:"max=40"`
	Message string `validate:"required,max=2000"`
	Rating  int    `validate:"gte=1,lte=5"`
}

type Service interface {
	Submit(ctx context.Context, input Input) (Feedback, error)
	List(ctx context.Context) []Feedback
}

type service struct {
	slot     *kvstore.Slot[[]Feedback]
	ids      ids.Generator
	clock    ids.Clock
	validate *validator.Validate
	logg     *logger.Logger

	mu sync.Mutex
}

func NewService(slot *kvstore.Slot[[]Feedback], idGen ids.Generator, clock ids.Clock, logg *logger.Logger) (Service, error) {
	if slot == nil {
		return nil, fmt.Errorf("feedback slot required")
	}
	if idGen == nil {
		return nil, fmt.Errorf("id generator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if clock == nil {
		clock = time.Now
	}
	return &service{slot: slot, ids: idGen, clock: clock, validate: validator.New(), logg: logg}, nil
}

func (s *service) Submit(ctx context.Context, input Input) (Feedback, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Message = strings.TrimSpace(input.Message)
	if input.Rating == 0 {
		input.Rating = DefaultRating
	}

	if err := s.validate.Struct(input); err != nil {
		return Feedback{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid feedback").WithDetails(fieldErrors(err))
	}

	entry := Feedback{
		ID:          s.ids.Next(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Message:     input.Message,
		Rating:      input.Rating,
		SubmittedAt: s.clock().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.slot.Update(ctx, func(current []Feedback) ([]Feedback, error) {
		next := make([]Feedback, 0, len(current)+1)
		next = append(next, current...)
		return append(next, entry), nil
	})
	s.logg.Info(s.logg.WithField(ctx, "rating", entry.Rating), "feedback received")
	return entry, nil
}

func (s *service) List(_ context.Context) []Feedback {
	current := s.slot.Get()
	out := make([]Feedback, len(current))
	copy(out, current)
	return out
}

func fieldErrors(err error) map[string]string {
	details := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return details
	}
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			details[field] = field + " is required"
		case "email":
			details[field] = "must be a valid email"
		case "gte", "lte":
			details[field] = "must be between 1 and 5"
		default:
			details[field] = "is invalid"
		}
	}
	return details
}
