package referral_repo

import (
	"context"
	"errors"
	"fmt"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "referrals"
	colID        = "id"
	colInviterID = "inviter_id"
	colInviteeID = "invitee_id"
	colRewarded  = "rewarded"
	colCreatedAt = "created_at"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewReferralRepository(dbc *pgxpool.Pool) repository.ReferralRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - транзакция из контекста, если она открыта, иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateReferral - запись о приглашении. На приглашенного не больше одной записи
func (r *repo) CreateReferral(ctx context.Context, referral *model.Referral) error {
	query := psql.Insert(table).
		Columns(colInviterID, colInviteeID).
		Values(referral.InviterID, referral.InviteeID).
		Suffix("RETURNING " + colID + ", " + colCreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&referral.ID, &referral.CreatedAt)
	if err != nil {
		return fmt.Errorf("create referral: %w", err)
	}

	return nil
}

func (r *repo) GetReferral(ctx context.Context, inviterID, inviteeID int) (*model.Referral, error) {
	query := psql.Select(colID, colInviterID, colInviteeID, colRewarded, colCreatedAt).
		From(table).
		Where(sq.Eq{colInviterID: inviterID, colInviteeID: inviteeID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var ref model.Referral
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&ref.ID, &ref.InviterID, &ref.InviteeID, &ref.Rewarded, &ref.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrReferralNotFound
		}
		return nil, fmt.Errorf("get referral: %w", err)
	}

	return &ref, nil
}

// MarkReferralRewarded - зеркалит флаг referral_rewarded приглашенного
func (r *repo) MarkReferralRewarded(ctx context.Context, inviterID, inviteeID int) error {
	query := psql.Update(table).
		Set(colRewarded, true).
		Where(sq.Eq{colInviterID: inviterID, colInviteeID: inviteeID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("mark referral rewarded: %w", err)
	}

	return nil
}

// CountReferrals - сколько приглашено и за скольких уже выдана награда
func (r *repo) CountReferrals(ctx context.Context, inviterID int) (int, int, error) {
	query := psql.Select("COUNT(*)", "COUNT(*) FILTER (WHERE "+colRewarded+")").
		From(table).
		Where(sq.Eq{colInviterID: inviterID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, 0, err
	}

	var total, rewarded int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&total, &rewarded)
	if err != nil {
		return 0, 0, fmt.Errorf("count referrals: %w", err)
	}

	return total, rewarded, nil
}
