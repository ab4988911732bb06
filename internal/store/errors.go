package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering an operator fails
	// because an operator with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrOperatorNotFound is returned when a query expected to match at least
	// one operator record produces an empty result set.
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrRunAlreadyExists is returned when an INSERT of a run aggregate hits
	// an existing run with the same identifier. Run identifiers are assigned
	// monotonically and never reused, so this indicates a restore mismatch.
	ErrRunAlreadyExists = errors.New("payroll run already exists")

	// ErrRunNotFound is returned when a query or update targets a run
	// identifier that does not exist in the database.
	ErrRunNotFound = errors.New("payroll run not found")

	// ErrItemNotFound is returned when a query or update targets an item
	// index that does not exist in the database.
	ErrItemNotFound = errors.New("payroll item not found")

	// ErrItemAlreadyExists is returned when an INSERT of an item hits an
	// existing row with the same ledger index.
	ErrItemAlreadyExists = errors.New("payroll item already exists")

	// ErrResultAlreadyExists is returned when a per-run item result is
	// inserted twice for the same (run, item) pair. The coordinator refuses
	// double processing before the write, so this indicates a replay.
	ErrResultAlreadyExists = errors.New("item result already recorded")

	// ErrDecryptionNotFound is returned when a query or update targets a
	// decryption request identifier that does not exist in the database.
	ErrDecryptionNotFound = errors.New("decryption request not found")

	// ErrDecryptionAlreadyExists is returned when an INSERT of a decryption
	// request collides with an existing request ID.
	ErrDecryptionAlreadyExists = errors.New("decryption request already exists")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")

	// ErrEncodingColumn is returned when serialising a structured field
	// (e.g. a handle list) for storage fails.
	ErrEncodingColumn = errors.New("failed to encode column value")

	// ErrDecodingColumn is returned when deserialising a structured field
	// read from the database fails.
	ErrDecodingColumn = errors.New("failed to decode column value")
)
