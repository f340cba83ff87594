package database

import (
	"context"
	"strings"
)

// TxManager runs fn inside a store transaction. Repositories called with the
// context passed to fn take part in that transaction.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EscapeLike escapes LIKE wildcards in s so it matches literally with ESCAPE '\'.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
