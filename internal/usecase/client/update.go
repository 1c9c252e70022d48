package client

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/care-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/care-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/care-scheduler/internal/httperr"
	"github.com/BruksfildServices01/care-scheduler/internal/models"
	"github.com/BruksfildServices01/care-scheduler/internal/validators"
)

// UpdateClientInput carries the fields to change; nil leaves a field as is.
type UpdateClientInput struct {
	ID        uint
	Name      *string
	Telephone *string
}

type UpdateClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateClient(repo domain.Repository, audit *audit.Dispatcher) *UpdateClient {
	return &UpdateClient{repo: repo, audit: audit}
}

func (uc *UpdateClient) Execute(ctx context.Context, in UpdateClientInput) (*models.Client, error) {
	client, err := uc.repo.GetClient(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	changed := map[string]any{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != client.Name {
			changed["name"] = name
			client.Name = name
		}
	}

	if in.Telephone != nil {
		phone, ok := validators.NormalizePhone(*in.Telephone)
		if !ok {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidPhone)
		}
		if phone != client.Telephone {
			changed["telephone"] = phone
			client.Telephone = phone
		}
	}

	if len(changed) == 0 {
		return client, nil
	}

	if err := uc.repo.UpdateClient(ctx, client); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionClientUpdated,
		Entity:   "client",
		EntityID: &client.ID,
		Metadata: changed,
	})

	return client, nil
}
