package client

import (
	"context"

	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

// Lookup groups the read-only client queries.
type Lookup struct {
	repo domain.Repository
}

func NewLookup(repo domain.Repository) *Lookup {
	return &Lookup{repo: repo}
}

func (uc *Lookup) ByID(ctx context.Context, id uint) (*models.Client, error) {
	return uc.repo.GetClient(ctx, id)
}

func (uc *Lookup) ByChatID(ctx context.Context, chatID int64) (*models.Client, error) {
	return uc.repo.GetClientByChatID(ctx, chatID)
}

// ByPhone returns client_not_found when nobody uses that number.
func (uc *Lookup) ByPhone(ctx context.Context, raw string) ([]models.Client, error) {
	phone, ok := validators.NormalizePhone(raw)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPhone)
	}

	clients, err := uc.repo.FindClientsByTelephone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return clients, nil
}

// List searches name, phone and username; an empty query lists everyone.
func (uc *Lookup) List(ctx context.Context, query string) ([]models.Client, error) {
	clients, err := uc.repo.ListClients(ctx, query)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []models.Client{}
	}
	return clients, nil
}
