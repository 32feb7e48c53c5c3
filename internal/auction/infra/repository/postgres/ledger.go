package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cristianortiz/auctionEscrow/internal/auction/domain"
	"github.com/jackc/pgx/v5"
)

// ledger keeps balances in the accounts table.
type ledger session

func (l *ledger) Transfer(ctx context.Context, from, to domain.Address, amount uint64) error {
	if amount == 0 || from == to {
		return nil
	}
	t := (*session)(l)
	v, err := toDB(amount)
	if err != nil {
		return err
	}

	debited, err := t.exec(ctx, t.psql.Update("accounts").
		Set("balance", squirrel.Expr("balance - ?", v)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("address = ?", from[:])).
		Where(squirrel.GtOrEq{"balance": v}))
	if err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	if debited == 0 {
		return domain.ErrInsufficientFunds
	}
	return t.credit(ctx, to, amount)
}

func (t *session) credit(ctx context.Context, addr domain.Address, amount uint64) error {
	v, err := toDB(amount)
	if err != nil {
		return err
	}
	_, err = t.exec(ctx, t.psql.Insert("accounts").
		Columns("address", "balance").
		Values(addr[:], v).
		Suffix("ON CONFLICT (address) DO UPDATE SET balance = accounts.balance + EXCLUDED.balance, updated_at = NOW()"))
	if err != nil {
		return fmt.Errorf("credit %s: %w", addr, err)
	}
	return nil
}

func (l *ledger) BalanceOf(ctx context.Context, addr domain.Address) (uint64, error) {
	t := (*session)(l)
	row, err := t.queryRow(ctx, t.psql.Select("balance").
		From("accounts").
		Where(squirrel.Expr("address = ?", addr[:])))
	if err != nil {
		return 0, err
	}
	var balance int64
	if err := row.Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return fromDB(balance)
}

func (l *ledger) RequireSignature(ctx context.Context, identity domain.Address) error {
	if !domain.HasSigner(ctx, identity) {
		return domain.ErrMissingSignature
	}
	return nil
}

// Now is the transaction start time, so it stays fixed for the whole unit.
func (l *ledger) Now(ctx context.Context) (int64, error) {
	if l.now != nil {
		return *l.now, nil
	}
	var now int64
	if err := l.tx.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM transaction_timestamp())::BIGINT").Scan(&now); err != nil {
		return 0, fmt.Errorf("read ledger time: %w", err)
	}
	l.now = &now
	return now, nil
}
