package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bsan5566/food-waste/internal/utils"
	"github.com/bsan5566/food-waste/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
)

const receiverTableName = "receivers"

var receiverColumns = utils.StructTagValues(types.Receiver{})

type ReceiverRepository struct {
	conn *sql.DB
}

func NewReceiverRepository(conn *sql.DB) *ReceiverRepository {
	return &ReceiverRepository{conn: conn}
}

func (r *ReceiverRepository) Receivers(ctx context.Context) ([]*types.Receiver, error) {
	query, args, err := psql().
		Select(receiverColumns...).
		From(receiverTableName).
		OrderBy("receiver_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receivers query: %w", err)
	}

	receivers := make([]*types.Receiver, 0)
	err = sqlscan.Select(ctx, r.conn, &receivers, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receivers: %w", err)
	}

	return receivers, nil
}

func (r *ReceiverRepository) Receiver(ctx context.Context, receiverID int) (*types.Receiver, error) {
	query, args, err := psql().
		Select(receiverColumns...).
		From(receiverTableName).
		Where(sq.Eq{"receiver_id": receiverID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receiver query: %w", err)
	}

	var receiver types.Receiver
	err = sqlscan.Get(ctx, r.conn, &receiver, query, args...)
	if err != nil && !sqlscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrReceiverNotFound
	}

	return &receiver, nil
}

func (r *ReceiverRepository) CreateReceiver(ctx context.Context, receiver *types.Receiver) error {
	receiverMap := utils.StructToMap(receiver)
	delete(receiverMap, "receiver_id")

	query, args, err := psql().Insert(receiverTableName).SetMap(receiverMap).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert receiver query: %w", err)
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapWriteErr(err, "failed to create receiver")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read new receiver id: %w", err)
	}
	receiver.ReceiverID = int(id)

	return nil
}

func (r *ReceiverRepository) UpdateReceiver(ctx context.Context, receiverID int, receiver *types.Receiver) error {
	receiver.ReceiverID = receiverID

	receiverMap := utils.StructToMap(receiver)
	delete(receiverMap, "receiver_id")

	query, args, err := psql().
		Update(receiverTableName).
		SetMap(receiverMap).
		Where(sq.Eq{"receiver_id": receiverID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update receiver query for receiver %d: %w", receiverID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to update receiver")
}

// DeleteReceiver nulls receiver_id on claims that referenced the receiver.
// Deleting an absent id is a no-op.
func (r *ReceiverRepository) DeleteReceiver(ctx context.Context, receiverID int) error {
	query, args, err := psql().
		Delete(receiverTableName).
		Where(sq.Eq{"receiver_id": receiverID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete receiver query for receiver %d: %w", receiverID, err)
	}

	_, err = r.conn.ExecContext(ctx, query, args...)

	return wrapWriteErr(err, "failed to delete receiver")
}
