package httphandler

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/modules/registry/usecase"
)

type HttpHandler struct {
	usecase *usecase.Usecase
}

func New(usecase *usecase.Usecase) *HttpHandler {
	return &HttpHandler{
		usecase: usecase,
	}
}

type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}

func parseAddress(field string, value string) (common.Address, error) {
	address, err := common.NewAddressFromString(value)
	if err != nil {
		return common.ZeroAddress, errs.NewPublicError(fmt.Sprintf("unable to parse address from %q", field))
	}
	return address, nil
}

func parseHash(field string, value string) (common.Hash, error) {
	hash, err := common.NewHashFromString(value)
	if err != nil {
		return common.Hash{}, errs.NewPublicError(fmt.Sprintf("unable to parse 32-byte hash from %q", field))
	}
	return hash, nil
}

// publicCodes maps rejection kinds to machine-readable condition codes
// surfaced in the API error payload.
var publicCodes = map[errs.ErrorKind]string{
	errs.NotFound:                  "not_found",
	errs.InvalidArgument:           "invalid_argument",
	errs.Unsupported:               "unsupported",
	errs.NotController:             "not_controller",
	errs.CallerNotOwnerNorApproved: "caller_not_owner_nor_approved",
	errs.SupplyCapExceeded:         "supply_cap_exceeded",
	errs.PaymentTooLow:             "payment_too_low",
	errs.CooldownActive:            "cooldown_active",
	errs.MintToZero:                "mint_to_zero",
	errs.TransferToZero:            "transfer_to_zero",
	errs.ApproveToCaller:           "approve_to_caller",
	errs.InvalidToken:              "invalid_token",
	errs.LayerIndexOutOfRange:      "layer_count_out_of_range",
	errs.RoyaltyBpsTooHigh:         "royalty_bps_too_high",
	errs.ZeroAddress:               "zero_address",
	errs.TransferFromWrongOwner:    "transfer_from_wrong_owner",
	errs.Reentrancy:                "reentrancy",
}

// mapDomainError converts known registry rejections into public errors. Other
// errors pass through unchanged and surface as internal errors.
func mapDomainError(err error) error {
	if err == nil {
		return nil
	}
	for kind, code := range publicCodes {
		if errors.Is(err, kind) {
			return errs.WithPublicCode(err, kind.Error(), code)
		}
	}
	return errors.WithStack(err)
}
