package account_repo

import (
	"context"
	"errors"
	"fmt"
	"reward_wheel/internal/model"
	"reward_wheel/internal/repository"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table               = "accounts"
	colID               = "id"
	colUsername         = "username"
	colPasswordHash     = "password_hash"
	colCoins            = "coins"
	colFreeSpins        = "free_spins"
	colBonusSpins       = "bonus_spins"
	colRewardedToday    = "rewarded_today"
	colStreak           = "streak"
	colLastSpinDate     = "last_spin_date"
	colReferralCode     = "referral_code"
	colReferredBy       = "referred_by"
	colReferralRewarded = "referral_rewarded"
	colCreatedAt        = "created_at"

	uniqueViolation        = "23505"
	usernameConstraint     = "accounts_username_key"
	referralCodeConstraint = "accounts_referral_code_key"
)

var columns = []string{
	colID, colUsername, colPasswordHash, colCoins, colFreeSpins, colBonusSpins,
	colRewardedToday, colStreak, colLastSpinDate, colReferralCode, colReferredBy,
	colReferralRewarded, colCreatedAt,
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAccountRepository(dbc *pgxpool.Pool) repository.AccountRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - транзакция из контекста, если она открыта, иначе пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateAccount - создает аккаунт. Возвращает ID созданного аккаунта
func (r *repo) CreateAccount(ctx context.Context, account *model.Account) (int, error) {
	query := psql.Insert(table).
		Columns(colUsername, colPasswordHash, colCoins, colFreeSpins, colBonusSpins,
			colStreak, colLastSpinDate, colReferralCode).
		Values(account.Username, account.PasswordHash, account.Coins, account.FreeSpins, account.BonusSpins,
			account.Streak, account.LastSpinDate, account.ReferralCode).
		Suffix("RETURNING " + colID + ", " + colCreatedAt)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id, &account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			switch pgErr.ConstraintName {
			case usernameConstraint:
				return 0, model.ErrDuplicateUsername
			case referralCodeConstraint:
				return 0, repository.ErrReferralCodeTaken
			}
		}
		return 0, fmt.Errorf("create account: %w", err)
	}

	account.ID = id
	return id, nil
}

// GetAccount - аккаунт по ID
func (r *repo) GetAccount(ctx context.Context, id int) (*model.Account, error) {
	return r.getBy(ctx, sq.Eq{colID: id})
}

// GetAccountByUsername - аккаунт по нормализованному имени пользователя
func (r *repo) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	return r.getBy(ctx, sq.Eq{colUsername: username})
}

// GetAccountByReferralCode - владелец реферального кода
func (r *repo) GetAccountByReferralCode(ctx context.Context, code string) (*model.Account, error) {
	return r.getBy(ctx, sq.Eq{colReferralCode: code})
}

func (r *repo) getBy(ctx context.Context, pred sq.Eq) (*model.Account, error) {
	query := psql.Select(columns...).
		From(table).
		Where(pred)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	account, err := scanAccount(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}

// ApplyDailyReset - сброс дня. В предикате старая дата последнего спина:
// второй конкурентный запрос с той же прочитанной датой ничего не изменит
func (r *repo) ApplyDailyReset(ctx context.Context, id int, prevDate *time.Time, reset model.DailyReset) (*model.Account, bool, error) {
	query := psql.Update(table).
		Set(colFreeSpins, sq.Expr("GREATEST("+colFreeSpins+", ?) + ?", reset.FreeSpinsBase, reset.Bonus)).
		Set(colRewardedToday, 0).
		Set(colStreak, reset.Streak).
		Set(colLastSpinDate, reset.Today).
		Where(sq.Eq{colID: id}).
		Where(sq.Expr(colLastSpinDate+" IS NOT DISTINCT FROM ?::date", prevDate))

	return r.updateReturning(ctx, query)
}

// ConsumeSpin - списывает один спин из выбранного пула и начисляет выигрыш.
// Не применяется, если пул уже пуст
func (r *repo) ConsumeSpin(ctx context.Context, id int, credit model.CreditType, coins int64) (*model.Account, bool, error) {
	col := colFreeSpins
	if credit == model.CreditBonus {
		col = colBonusSpins
	}

	query := psql.Update(table).
		Set(col, sq.Expr(col+" - 1")).
		Set(colCoins, sq.Expr(colCoins+" + ?", coins)).
		Where(sq.Eq{colID: id}).
		Where(sq.Gt{col: 0})

	return r.updateReturning(ctx, query)
}

// GrantRewardedSpin - +1 бесплатный спин за рекламу, пока не исчерпан дневной лимит
func (r *repo) GrantRewardedSpin(ctx context.Context, id int, maxPerDay int) (*model.Account, bool, error) {
	query := psql.Update(table).
		Set(colFreeSpins, sq.Expr(colFreeSpins+" + 1")).
		Set(colRewardedToday, sq.Expr(colRewardedToday+" + 1")).
		Where(sq.Eq{colID: id}).
		Where(sq.Lt{colRewardedToday: maxPerDay})

	return r.updateReturning(ctx, query)
}

// AddBonusSpins - начисление бонусных спинов (покупка, реферал)
func (r *repo) AddBonusSpins(ctx context.Context, id int, n int) (*model.Account, error) {
	query := psql.Update(table).
		Set(colBonusSpins, sq.Expr(colBonusSpins+" + ?", n)).
		Where(sq.Eq{colID: id})

	account, applied, err := r.updateReturning(ctx, query)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, model.ErrAccountNotFound
	}

	return account, nil
}

// SetReferredBy - привязывает приглашенного к пригласившему, только один раз
func (r *repo) SetReferredBy(ctx context.Context, inviteeID, inviterID int) (bool, error) {
	query := psql.Update(table).
		Set(colReferredBy, inviterID).
		Where(sq.Eq{colID: inviteeID, colReferredBy: nil}).
		Where(sq.NotEq{colID: inviterID})

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	tag, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, fmt.Errorf("set referred by: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// LatchReferralReward - переводит referral_rewarded false -> true.
// Возвращает ID пригласившего, если защелка сработала именно сейчас
func (r *repo) LatchReferralReward(ctx context.Context, inviteeID int) (int, bool, error) {
	query := psql.Update(table).
		Set(colReferralRewarded, true).
		Where(sq.Eq{colID: inviteeID, colReferralRewarded: false}).
		Where(sq.NotEq{colReferredBy: nil}).
		Suffix("RETURNING " + colReferredBy)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, false, err
	}

	var inviterID int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&inviterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("latch referral reward: %w", err)
	}

	return inviterID, true, nil
}

// TopByCoins - лидерборд по монетам
func (r *repo) TopByCoins(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := psql.Select(colUsername, colCoins, colStreak).
		From(table).
		OrderBy(colCoins+" DESC", colID+" ASC").
		Limit(uint64(limit))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("top by coins: %w", err)
	}
	defer rows.Close()

	entries := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.Username, &e.Coins, &e.Streak); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *repo) updateReturning(ctx context.Context, query sq.UpdateBuilder) (*model.Account, bool, error) {
	sqlStr, args, err := query.Suffix("RETURNING " + strings.Join(columns, ", ")).ToSql()
	if err != nil {
		return nil, false, err
	}

	account, err := scanAccount(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("update account: %w", err)
	}

	return account, true, nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(
		&a.ID, &a.Username, &a.PasswordHash, &a.Coins, &a.FreeSpins, &a.BonusSpins,
		&a.RewardedToday, &a.Streak, &a.LastSpinDate, &a.ReferralCode, &a.ReferredBy,
		&a.ReferralRewarded, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}
