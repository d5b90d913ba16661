package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// GetIntOrZero reads an integer value from contract storage, treating a
// missing key as zero.
func GetIntOrZero(ctx storage.Context, key []byte) int {
	data := storage.Get(ctx, key)
	if data != nil {
		return data.(int)
	}

	return 0
}

// PutIntOrDelete writes an integer value into contract storage removing the
// key completely when the value is zero. Keeps storage free of empty
// account records.
func PutIntOrDelete(ctx storage.Context, key []byte, value int) {
	if value == 0 {
		storage.Delete(ctx, key)
	} else {
		storage.Put(ctx, key, value)
	}
}
