package postgres

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/gaze-network/uint128"
	"github.com/jackc/pgx/v5/pgtype"
)

// Addresses and hashes are stored as lowercase 0x-prefixed hex text. The zero
// address is stored literally, matching its in-memory sentinel role.
type eventModel struct {
	Sequence        int64
	Type            string
	Height          int64
	BlockTime       pgtype.Timestamptz
	Caller          string
	FromAddress     string
	ToAddress       string
	ArtifactId      int64
	TraitCommitment string
	LayerCount      int16
	Payment         pgtype.Numeric
	Holder          string
	Spender         string
	Operator        string
	Approved        bool
	RoyaltyPayee    string
	RoyaltyBps      int16
	PrevBaseURI     string
	NewBaseURI      string
}

type artifactModel struct {
	Id              int64
	Owner           string
	TraitCommitment string
	LayerCount      int16
	IssuedHeight    int64
	IssuedAt        pgtype.Timestamptz
}

func numericFromUint128(src uint128.Uint128) (pgtype.Numeric, error) {
	var result pgtype.Numeric
	if err := result.UnmarshalJSON([]byte(src.String())); err != nil {
		return pgtype.Numeric{}, errors.WithStack(err)
	}
	return result, nil
}

func uint128FromNumeric(src pgtype.Numeric) (uint128.Uint128, error) {
	if !src.Valid {
		return uint128.Zero, nil
	}
	bytes, err := src.MarshalJSON()
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	result, err := uint128.FromString(string(bytes))
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return result, nil
}

func mapEventTypeToModel(src *entity.Event) (eventModel, error) {
	payment, err := numericFromUint128(src.Payment)
	if err != nil {
		return eventModel{}, errors.Wrap(err, "failed to convert payment")
	}
	return eventModel{
		Sequence:        int64(src.Sequence),
		Type:            string(src.Type),
		Height:          int64(src.Height),
		BlockTime:       pgtype.Timestamptz{Time: src.Timestamp.UTC(), Valid: true},
		Caller:          src.Caller.String(),
		FromAddress:     src.From.String(),
		ToAddress:       src.To.String(),
		ArtifactId:      int64(src.ArtifactId),
		TraitCommitment: src.TraitCommitment.String(),
		LayerCount:      int16(src.LayerCount),
		Payment:         payment,
		Holder:          src.Holder.String(),
		Spender:         src.Spender.String(),
		Operator:        src.Operator.String(),
		Approved:        src.Approved,
		RoyaltyPayee:    src.RoyaltyPayee.String(),
		RoyaltyBps:      int16(src.RoyaltyBps),
		PrevBaseURI:     src.PreviousBaseURI,
		NewBaseURI:      src.NewBaseURI,
	}, nil
}

func mapEventModelToType(src eventModel) (*entity.Event, error) {
	payment, err := uint128FromNumeric(src.Payment)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert payment")
	}
	caller, err := common.NewAddressFromString(src.Caller)
	if err != nil {
		return nil, errors.Wrap(err, "invalid caller")
	}
	from, err := common.NewAddressFromString(src.FromAddress)
	if err != nil {
		return nil, errors.Wrap(err, "invalid from address")
	}
	to, err := common.NewAddressFromString(src.ToAddress)
	if err != nil {
		return nil, errors.Wrap(err, "invalid to address")
	}
	holder, err := common.NewAddressFromString(src.Holder)
	if err != nil {
		return nil, errors.Wrap(err, "invalid holder")
	}
	spender, err := common.NewAddressFromString(src.Spender)
	if err != nil {
		return nil, errors.Wrap(err, "invalid spender")
	}
	operator, err := common.NewAddressFromString(src.Operator)
	if err != nil {
		return nil, errors.Wrap(err, "invalid operator")
	}
	royaltyPayee, err := common.NewAddressFromString(src.RoyaltyPayee)
	if err != nil {
		return nil, errors.Wrap(err, "invalid royalty payee")
	}
	traitCommitment, err := common.NewHashFromString(src.TraitCommitment)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trait commitment")
	}
	var timestamp time.Time
	if src.BlockTime.Valid {
		timestamp = src.BlockTime.Time.UTC()
	}
	return &entity.Event{
		Sequence:        uint64(src.Sequence),
		Type:            entity.EventType(src.Type),
		Height:          uint64(src.Height),
		Timestamp:       timestamp,
		Caller:          caller,
		From:            from,
		To:              to,
		ArtifactId:      uint64(src.ArtifactId),
		TraitCommitment: traitCommitment,
		LayerCount:      uint8(src.LayerCount),
		Payment:         payment,
		Holder:          holder,
		Spender:         spender,
		Operator:        operator,
		Approved:        src.Approved,
		RoyaltyPayee:    royaltyPayee,
		RoyaltyBps:      uint16(src.RoyaltyBps),
		PreviousBaseURI: src.PrevBaseURI,
		NewBaseURI:      src.NewBaseURI,
	}, nil
}

func mapArtifactTypeToModel(src *entity.Artifact) artifactModel {
	return artifactModel{
		Id:              int64(src.Id),
		Owner:           src.Owner.String(),
		TraitCommitment: src.TraitCommitment.String(),
		LayerCount:      int16(src.LayerCount),
		IssuedHeight:    int64(src.IssuedAtHeight),
		IssuedAt:        pgtype.Timestamptz{Time: src.IssuedAt.UTC(), Valid: true},
	}
}

func mapArtifactModelToType(src artifactModel) (*entity.Artifact, error) {
	owner, err := common.NewAddressFromString(src.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "invalid owner")
	}
	traitCommitment, err := common.NewHashFromString(src.TraitCommitment)
	if err != nil {
		return nil, errors.Wrap(err, "invalid trait commitment")
	}
	var issuedAt time.Time
	if src.IssuedAt.Valid {
		issuedAt = src.IssuedAt.Time.UTC()
	}
	return &entity.Artifact{
		Id:              uint64(src.Id),
		Owner:           owner,
		TraitCommitment: traitCommitment,
		LayerCount:      uint8(src.LayerCount),
		IssuedAtHeight:  uint64(src.IssuedHeight),
		IssuedAt:        issuedAt,
	}, nil
}

// buildEventsQuery assembles the filtered events query. Events come back in
// journal order.
func buildEventsQuery(filter datagateway.EventFilter, limit int32, offset int32) (string, []any) {
	query := selectEvents
	args := make([]any, 0, 8)
	conds := make([]string, 0, 5)

	appendCond := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Type != "" {
		appendCond("type = $%d", string(filter.Type))
	}
	if filter.ArtifactId != 0 {
		appendCond("artifact_id = $%d", int64(filter.ArtifactId))
	}
	if !filter.Address.IsZero() {
		addr := filter.Address.String()
		args = append(args, addr)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(caller = $%d OR from_address = $%d OR to_address = $%d OR holder = $%d OR spender = $%d OR operator = $%d)", n, n, n, n, n, n))
	}
	if filter.FromHeight != 0 {
		appendCond("height >= $%d", int64(filter.FromHeight))
	}
	if filter.ToHeight != 0 {
		appendCond("height <= $%d", int64(filter.ToHeight))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY sequence"
	return appendPagination(query, args, limit, offset)
}

func appendPagination(query string, args []any, limit int32, offset int32) (string, []any) {
	if limit >= 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	return query, args
}
