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

type RegisterClientInput struct {
	// ChatID is zero when the operator registers a client without a chat.
	ChatID    int64
	Telephone string
	FirstName string
	Username  string
	Name      string
}

// RegisterClient creates the client or refreshes it. Chat clients are keyed
// by chat id; operator-entered ones by phone.
type RegisterClient struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRegisterClient(repo domain.Repository, audit *audit.Dispatcher) *RegisterClient {
	return &RegisterClient{repo: repo, audit: audit}
}

func (uc *RegisterClient) Execute(ctx context.Context, in RegisterClientInput) (*models.Client, error) {
	phone, ok := validators.NormalizePhone(in.Telephone)
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidPhone)
	}

	client := &models.Client{
		Telephone: phone,
		FirstName: strings.TrimSpace(in.FirstName),
		Username:  strings.TrimPrefix(strings.TrimSpace(in.Username), "@"),
		Name:      strings.TrimSpace(in.Name),
	}

	if in.ChatID != 0 {
		chatID := in.ChatID
		client.ChatID = &chatID
		if err := uc.repo.UpsertClientByChatID(ctx, client); err != nil {
			return nil, err
		}
		uc.dispatch(ctx, client)
		return client, nil
	}

	existing, err := uc.repo.FindClientsByTelephone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		found := existing[0]
		return &found, nil
	}

	if err := uc.repo.CreateClient(ctx, client); err != nil {
		return nil, err
	}
	uc.dispatch(ctx, client)
	return client, nil
}

func (uc *RegisterClient) dispatch(ctx context.Context, c *models.Client) {
	uc.audit.Dispatch(ctx, audit.Event{
		Action:   audit.ActionClientRegistered,
		Entity:   "client",
		EntityID: &c.ID,
	})
}
