package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/bairooha/donordesk/internal/analytics"
	"github.com/bairooha/donordesk/internal/assist"
	"github.com/bairooha/donordesk/internal/campaign"
	"github.com/bairooha/donordesk/internal/genai"
	"github.com/bairooha/donordesk/internal/ledger"
)

// toConnectError maps domain errors onto Connect codes.
func toConnectError(err error) error {
	if err == nil {
		return nil
	}
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return err
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, ledger.ErrNotFound), errors.Is(err, campaign.ErrCampaignNotFound):
		return connect.CodeNotFound
	case errors.Is(err, ledger.ErrInvalid),
		errors.Is(err, assist.ErrInvalidInput),
		errors.Is(err, analytics.ErrUnknownGranularity):
		return connect.CodeInvalidArgument
	case errors.Is(err, campaign.ErrCampaignActive):
		return connect.CodeFailedPrecondition
	case errors.Is(err, genai.ErrNotConfigured),
		errors.Is(err, genai.ErrProviderFailure),
		errors.Is(err, genai.ErrInvalidOutput):
		return connect.CodeUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	default:
		return connect.CodeInternal
	}
}
