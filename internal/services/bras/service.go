package bras

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"innerventory/internal/utils/sanitize"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Service handles bra inventory business logic
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService creates a new bras service
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// CreateBraRequest represents an inventory item creation request
type CreateBraRequest struct {
	Band      int       `json:"band" validate:"required,min=26,max=56" example:"34"`
	Cup       string    `json:"cup" validate:"required" example:"C"`
	Style     string    `json:"style" example:"t-shirt"`
	Condition string    `json:"condition" validate:"omitempty,oneof=new like-new used" example:"like-new"`
	Quantity  int       `json:"quantity" validate:"min=0" example:"4"`
	DonatedAt time.Time `json:"donated_at"`
}

// BraResponse represents a single inventory item response
type BraResponse struct {
	Bra *Bra `json:"bra"`
}

// ListBrasResponse represents the full inventory
type ListBrasResponse struct {
	Bras []*Bra `json:"bras"`
}

// Create adds an item to the inventory
func (s *Service) Create(ctx context.Context, req CreateBraRequest) (*BraResponse, error) {
	now := time.Now()
	donated := req.DonatedAt
	if donated.IsZero() {
		donated = now
	}
	b := &Bra{
		ID:        bson.NewObjectID(),
		Band:      req.Band,
		Cup:       sanitize.Clean(req.Cup),
		Style:     sanitize.Clean(req.Style),
		Condition: req.Condition,
		Quantity:  req.Quantity,
		DonatedAt: donated,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		s.log.Error(ErrCreateBra.Error(), "error", err)
		return nil, ErrCreateBra
	}

	return &BraResponse{Bra: b}, nil
}

// List returns the whole inventory; empty inventory is an empty list.
func (s *Service) List(ctx context.Context) (*ListBrasResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error(ErrListBras.Error(), "error", err)
		return nil, ErrListBras
	}
	if items == nil {
		items = []*Bra{}
	}
	return &ListBrasResponse{Bras: items}, nil
}

// Update patches an inventory item
func (s *Service) Update(ctx context.Context, id bson.ObjectID, patch UpdateBra) (*BraResponse, error) {
	if patch.Cup != nil {
		cleaned := sanitize.Clean(*patch.Cup)
		patch.Cup = &cleaned
	}
	if patch.Style != nil {
		cleaned := sanitize.Clean(*patch.Style)
		patch.Style = &cleaned
	}

	b, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, ErrBraNotFound) {
			return nil, ErrBraNotFound
		}
		s.log.Error(ErrUpdateBra.Error(), "error", err, "bra_id", id.Hex())
		return nil, ErrUpdateBra
	}

	return &BraResponse{Bra: b}, nil
}

// Delete removes an inventory item
func (s *Service) Delete(ctx context.Context, id bson.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrBraNotFound) {
			return ErrBraNotFound
		}
		s.log.Error(ErrDeleteBra.Error(), "error", err, "bra_id", id.Hex())
		return ErrDeleteBra
	}
	return nil
}
