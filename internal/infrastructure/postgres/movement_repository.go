package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Entradas y salidas viven en tablas separadas; kind selecciona cuál.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador de persistencia para movimientos.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func tableFor(kind entity.MovementKind) string {
	if kind == entity.KindOutbound {
		return "outbound_movements"
	}
	return "inbound_movements"
}

// Create persiste un movimiento nuevo y asigna su ID.
func (r *MovementRepo) Create(kind entity.MovementKind, m *entity.Movement) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (item_id, quantity, occurred_at)
		VALUES ($1, $2, $3)
		RETURNING id`, tableFor(kind))
	err := r.q.QueryRow(context.Background(), query, m.ItemID, m.Quantity, m.OccurredAt).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("insert %s movement: %w", kind, err)
	}
	return nil
}

// GetByID obtiene el movimiento crudo, sin join. nil si no existe.
func (r *MovementRepo) GetByID(kind entity.MovementKind, id int64) (*entity.Movement, error) {
	query := fmt.Sprintf(`SELECT id, item_id, quantity, occurred_at FROM %s WHERE id = $1`, tableFor(kind))
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(&m.ID, &m.ItemID, &m.Quantity, &m.OccurredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s movement: %w", kind, err)
	}
	return &m, nil
}

// GetWithItem obtiene el movimiento con los campos del item dueño.
// nil si no existe o si el item está borrado.
func (r *MovementRepo) GetWithItem(kind entity.MovementKind, id int64) (*entity.MovementWithItem, error) {
	query := fmt.Sprintf(`
		SELECT m.id, m.item_id, m.quantity, m.occurred_at,
		       i.code, i.name, i.unit, i.max_threshold
		FROM %s m
		JOIN items i ON i.id = m.item_id AND i.deleted = FALSE
		WHERE m.id = $1`, tableFor(kind))
	row, err := scanMovementWithItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s movement with item: %w", kind, err)
	}
	return row, nil
}

// Update persiste quantity y occurred_at. El item dueño nunca cambia.
func (r *MovementRepo) Update(kind entity.MovementKind, m *entity.Movement) error {
	query := fmt.Sprintf(`UPDATE %s SET quantity = $2, occurred_at = $3 WHERE id = $1`, tableFor(kind))
	cmd, err := r.q.Exec(context.Background(), query, m.ID, m.Quantity, m.OccurredAt)
	if err != nil {
		return fmt.Errorf("update %s movement: %w", kind, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la fila del movimiento.
func (r *MovementRepo) Delete(kind entity.MovementKind, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, tableFor(kind))
	cmd, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("delete %s movement: %w", kind, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pagina movimientos con item desnormalizado. Orden: occurred_at
// descendente, id descendente como desempate estable.
func (r *MovementRepo) List(kind entity.MovementKind, f repository.MovementFilter) ([]*entity.MovementWithItem, int, error) {
	where := ` WHERE i.deleted = FALSE`
	args := []any{}
	if f.Search != "" {
		args = append(args, f.Search)
		n := strconv.Itoa(len(args))
		where += ` AND (i.name ILIKE '%' || $` + n + ` || '%' OR i.code ILIKE '%' || $` + n + ` || '%')`
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		where += ` AND m.occurred_at >= $` + strconv.Itoa(len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		where += ` AND m.occurred_at < $` + strconv.Itoa(len(args))
	}

	table := tableFor(kind)
	countQuery := `SELECT COUNT(*) FROM ` + table + ` m JOIN items i ON i.id = m.item_id` + where
	var total int
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s movements: %w", kind, err)
	}

	query := `
		SELECT m.id, m.item_id, m.quantity, m.occurred_at,
		       i.code, i.name, i.unit, i.max_threshold
		FROM ` + table + ` m
		JOIN items i ON i.id = m.item_id` + where + `
		ORDER BY m.occurred_at DESC, m.id DESC
		LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s movements: %w", kind, err)
	}
	defer rows.Close()

	list, err := scanMovementsWithItem(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListWindow devuelve los movimientos de la ventana [from, to) en orden
// cronológico ascendente, para el reporte mensual.
func (r *MovementRepo) ListWindow(kind entity.MovementKind, from, to time.Time) ([]*entity.MovementWithItem, error) {
	query := fmt.Sprintf(`
		SELECT m.id, m.item_id, m.quantity, m.occurred_at,
		       i.code, i.name, i.unit, i.max_threshold
		FROM %s m
		JOIN items i ON i.id = m.item_id AND i.deleted = FALSE
		WHERE m.occurred_at >= $1 AND m.occurred_at < $2
		ORDER BY m.occurred_at ASC, m.id ASC`, tableFor(kind))
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list %s window: %w", kind, err)
	}
	defer rows.Close()
	return scanMovementsWithItem(rows)
}

// Summarize cuenta movimientos y suma cantidades en la ventana [from, to).
func (r *MovementRepo) Summarize(kind entity.MovementKind, from, to time.Time) (int, int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*), COALESCE(SUM(m.quantity), 0)
		FROM %s m
		JOIN items i ON i.id = m.item_id AND i.deleted = FALSE
		WHERE m.occurred_at >= $1 AND m.occurred_at < $2`, tableFor(kind))
	var count, total int
	err := r.q.QueryRow(context.Background(), query, from, to).Scan(&count, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("summarize %s movements: %w", kind, err)
	}
	return count, total, nil
}

// TopItems ranking de items por cantidad acumulada en la ventana, descendente.
func (r *MovementRepo) TopItems(kind entity.MovementKind, from, to time.Time, limit int) ([]*entity.ItemTotal, error) {
	query := fmt.Sprintf(`
		SELECT i.id, i.code, i.name, i.unit, SUM(m.quantity) AS total_quantity
		FROM %s m
		JOIN items i ON i.id = m.item_id AND i.deleted = FALSE
		WHERE m.occurred_at >= $1 AND m.occurred_at < $2
		GROUP BY i.id, i.code, i.name, i.unit
		ORDER BY total_quantity DESC, i.name ASC
		LIMIT $3`, tableFor(kind))
	rows, err := r.q.Query(context.Background(), query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("top %s items: %w", kind, err)
	}
	defer rows.Close()

	var list []*entity.ItemTotal
	for rows.Next() {
		var t entity.ItemTotal
		if err := rows.Scan(&t.ItemID, &t.ItemCode, &t.ItemName, &t.ItemUnit, &t.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan item total: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func scanMovementWithItem(row pgx.Row) (*entity.MovementWithItem, error) {
	var m entity.MovementWithItem
	err := row.Scan(&m.ID, &m.ItemID, &m.Quantity, &m.OccurredAt,
		&m.ItemCode, &m.ItemName, &m.ItemUnit, &m.ItemMaxThreshold)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMovementsWithItem(rows pgx.Rows) ([]*entity.MovementWithItem, error) {
	var list []*entity.MovementWithItem
	for rows.Next() {
		var m entity.MovementWithItem
		if err := rows.Scan(&m.ID, &m.ItemID, &m.Quantity, &m.OccurredAt,
			&m.ItemCode, &m.ItemName, &m.ItemUnit, &m.ItemMaxThreshold); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
