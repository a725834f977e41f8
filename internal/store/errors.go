package store

import "errors"

// Sentinel errors returned by storage backends. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrGettingValue is returned (wrapped) when a read from the underlying
	// key-value backend fails for a reason other than absence.
	ErrGettingValue = errors.New("error getting value from storage")

	// ErrSettingValue is returned (wrapped) when a durable write to the
	// underlying key-value backend fails.
	ErrSettingValue = errors.New("error setting value in storage")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the SQL
	// backend fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan kv row")

	// ErrUnknownBackend is returned by the storage factory when the
	// configured backend name is not one of memory, badger, sqlite or
	// postgres.
	ErrUnknownBackend = errors.New("unknown storage backend")
)
