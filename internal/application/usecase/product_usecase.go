package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos del menú. La existencia se deriva de la receta.
type ProductUseCase struct {
	repo     repository.ProductRepository
	activity activity.Logger
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, activityLog activity.Logger) *ProductUseCase {
	if activityLog == nil {
		activityLog = activity.Nop{}
	}
	return &ProductUseCase{repo: repo, activity: activityLog}
}

// Create crea un nuevo producto. Status por defecto: available.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, actor activity.Actor) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.PriceCents < 0 {
		return nil, domain.ErrInvalidInput
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Category:    in.Category,
		PriceCents:  in.PriceCents,
		Status:      status,
		ImageURL:    in.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log(ctx, activity.ActionCreate, product, "Created product "+product.Name, actor)
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID (incluye archivados).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza los campos enviados del producto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest, actor activity.Actor) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.PriceCents != nil {
		if *in.PriceCents < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.PriceCents = *in.PriceCents
	}
	if in.Status != nil {
		status, err := normalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		product.Status = status
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.log(ctx, activity.ActionUpdate, product, "Updated product "+product.Name, actor)
	return ToProductResponse(product), nil
}

// Archive oculta el producto del menú y de la caja sin borrarlo.
func (uc *ProductUseCase) Archive(ctx context.Context, id string, actor activity.Actor) (*dto.ProductResponse, error) {
	return uc.setArchived(ctx, id, true, actor)
}

// Restore vuelve a publicar un producto archivado.
func (uc *ProductUseCase) Restore(ctx context.Context, id string, actor activity.Actor) (*dto.ProductResponse, error) {
	return uc.setArchived(ctx, id, false, actor)
}

func (uc *ProductUseCase) setArchived(ctx context.Context, id string, archived bool, actor activity.Actor) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.IsArchived == archived {
		return ToProductResponse(product), nil
	}
	if err := uc.repo.SetArchived(ctx, id, archived); err != nil {
		return nil, err
	}
	product.IsArchived = archived
	product.UpdatedAt = time.Now()
	action, verb := activity.ActionRestore, "Restored"
	if archived {
		action, verb = activity.ActionArchive, "Archived"
	}
	uc.log(ctx, action, product, verb+" product "+product.Name, actor)
	return ToProductResponse(product), nil
}

func (uc *ProductUseCase) log(ctx context.Context, action string, p *entity.Product, desc string, actor activity.Actor) {
	_ = uc.activity.Log(ctx, activity.Entry{
		Action:      action,
		EntityType:  activity.EntityProduct,
		EntityID:    p.ID,
		EntityName:  p.Name,
		Description: desc,
		Metadata: map[string]any{
			"price_cents": p.PriceCents,
			"status":      p.Status,
			"category":    p.Category,
		},
		Actor: actor,
	})
}

func normalizeStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", entity.ProductStatusAvailable:
		return entity.ProductStatusAvailable, nil
	case entity.ProductStatusUnavailable:
		return entity.ProductStatusUnavailable, nil
	}
	return "", fmt.Errorf("status %q: %w", s, domain.ErrInvalidInput)
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		PriceCents:  p.PriceCents,
		Status:      p.Status,
		ImageURL:    p.ImageURL,
		IsArchived:  p.IsArchived,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
