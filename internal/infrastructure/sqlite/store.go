package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
)

// Store es el handle único al almacenamiento local. Sustituye el singleton
// implícito por un objeto con ciclo de vida explícito: se abre una vez en el
// arranque, se reutiliza en todo el proceso y se cierra al apagar.
type Store struct {
	db   *sql.DB
	path string
}

// Open abre (o crea) la base SQLite en path con WAL, foreign keys y
// transacciones de escritura inmediatas (_txlock=immediate), de modo que cada
// transacción toma el write lock al iniciar y la secuencia leer-validar-escribir
// de un movimiento queda serializada frente a otra transacción concurrente.
// Si el almacenamiento no puede abrirse devuelve domain.ErrStorageUnavailable.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate",
		path,
	)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return &Store{db: db, path: path}, nil
}

// Close cierra el handle subyacente.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path devuelve la ruta del archivo de base de datos.
func (s *Store) Path() string {
	return s.path
}

// DB expone el handle para construir repositorios y el TxRunner.
func (s *Store) DB() *sql.DB {
	return s.db
}

// EnsureSchema crea las tablas productos y movimientos si no existen.
// Idempotente: seguro de llamar en cada arranque sin pérdida de datos.
// El esquema replica el de la app original (columnas en español) y añade
// la foreign key y el CHECK de nombre para que el propio almacenamiento
// rechace movimientos huérfanos y nombres vacíos.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const productos = `
		CREATE TABLE IF NOT EXISTS productos (
			id            INTEGER       PRIMARY KEY AUTOINCREMENT,
			nombre        VARCHAR(64)   NOT NULL CHECK (length(nombre) > 0),
			precio        DECIMAL(10,2) NOT NULL DEFAULT '0.0',
			minStock      INTEGER       NOT NULL DEFAULT 0,
			currentStock  INTEGER       NOT NULL DEFAULT 0,
			maxStock      INTEGER       NOT NULL DEFAULT 0
		)`
	const movimientos = `
		CREATE TABLE IF NOT EXISTS movimientos (
			id_movimiento INTEGER  PRIMARY KEY AUTOINCREMENT,
			id_producto   INTEGER  NOT NULL REFERENCES productos(id),
			fecha_hora    DATETIME NOT NULL,
			cantidad      INTEGER  NOT NULL
		)`
	const movIdx = `
		CREATE INDEX IF NOT EXISTS idx_movimientos_producto
		ON movimientos (id_producto)`

	for _, ddl := range []string{productos, movimientos, movIdx} {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
	}
	return nil
}
