package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/jcastro/almacen-api/internal/domain"
	"github.com/jcastro/almacen-api/internal/domain/entity"
	"github.com/jcastro/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, code, name, unit, stock, min_threshold, max_threshold, deleted"

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de persistencia para items. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un item nuevo y asigna su ID. El constraint único de code
// cubre toda la población, borrados incluidos.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (code, name, unit, stock, min_threshold, max_threshold, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		item.Code, item.Name, item.Unit, item.Stock, item.MinThreshold, item.MaxThreshold,
	).Scan(&item.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un item no borrado. nil si no existe o está borrado.
func (r *ItemRepo) GetByID(id int64) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND deleted = FALSE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item")
}

// GetForUpdate obtiene un item no borrado bloqueando la fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(id int64) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND deleted = FALSE FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get item for update")
}

// CodeExists indica si un código ya está tomado, incluyendo items borrados.
func (r *ItemRepo) CodeExists(code string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM items WHERE code = $1)`, code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check item code: %w", err)
	}
	return exists, nil
}

// Update persiste los atributos editables. Code es inmutable y no se toca.
func (r *ItemRepo) Update(item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, unit = $3, stock = $4, min_threshold = $5, max_threshold = $6
		WHERE id = $1 AND deleted = FALSE`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Unit, item.Stock, item.MinThreshold, item.MaxThreshold,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AdjustStock aplica un delta atómico sobre stock (nunca read-modify-write en
// memoria, para no perder updates bajo posts concurrentes).
func (r *ItemRepo) AdjustStock(id int64, delta int) (*entity.Item, error) {
	query := `
		UPDATE items SET stock = stock + $2
		WHERE id = $1 AND deleted = FALSE
		RETURNING ` + itemColumns
	item, err := r.scanOne(r.q.QueryRow(context.Background(), query, id, delta), "adjust stock")
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

// SetDeleted marca el borrado lógico.
func (r *ItemRepo) SetDeleted(id int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE items SET deleted = TRUE WHERE id = $1 AND deleted = FALSE`, id)
	if err != nil {
		return fmt.Errorf("soft delete item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List pagina items según el filtro tipado, ordenados por nombre ascendente.
func (r *ItemRepo) List(f repository.ItemFilter) ([]*entity.Item, int, error) {
	where := ` WHERE deleted = $1`
	args := []any{f.Deleted}
	if f.Search != "" {
		where += ` AND (name ILIKE '%' || $2 || '%' OR code ILIKE '%' || $2 || '%')`
		args = append(args, f.Search)
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM items`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := `SELECT ` + itemColumns + ` FROM items` + where +
		` ORDER BY name ASC LIMIT $` + strconv.Itoa(len(args)+1) +
		` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	list, err := scanItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListActive devuelve todos los items no borrados ordenados por nombre.
func (r *ItemRepo) ListActive() ([]*entity.Item, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+itemColumns+` FROM items WHERE deleted = FALSE ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	var it entity.Item
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Unit, &it.Stock,
		&it.MinThreshold, &it.MaxThreshold, &it.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &it, nil
}

func scanItems(rows pgx.Rows) ([]*entity.Item, error) {
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.Code, &it.Name, &it.Unit, &it.Stock,
			&it.MinThreshold, &it.MaxThreshold, &it.Deleted); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}
