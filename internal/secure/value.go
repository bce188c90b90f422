// Package secure keeps parsed secret values encrypted in memory until they are written.
package secure

import (
	"fmt"

	"github.com/awnumar/memguard"
)

// Value holds one secret value inside a memguard enclave.
// The zero value and nil both represent the empty string.
type Value struct {
	enclave *memguard.Enclave
}

// NewValue seals s into an enclave. memguard wipes the intermediate buffer.
func NewValue(s string) *Value {
	if s == "" {
		return &Value{}
	}
	return &Value{enclave: memguard.NewEnclave([]byte(s))}
}

// Use decrypts the value into a locked buffer for the duration of fn.
// The plaintext is wiped when fn returns; fn must not retain b.
func (v *Value) Use(fn func(b []byte) error) error {
	if v == nil || v.enclave == nil {
		return fn(nil)
	}

	locked, err := v.enclave.Open()
	if err != nil {
		return fmt.Errorf("failed to open protected value: %w", err)
	}
	defer locked.Destroy()

	return fn(locked.Bytes())
}

// Reveal returns a plaintext copy of the value
func (v *Value) Reveal() (string, error) {
	var out string
	err := v.Use(func(b []byte) error {
		out = string(b)
		return nil
	})
	return out, err
}

// String never exposes the value
func (v *Value) String() string {
	return "[REDACTED]"
}

// GoString never exposes the value
func (v *Value) GoString() string {
	return "[REDACTED]"
}

// Purge wipes all protected memory. Call once on exit.
func Purge() {
	memguard.Purge()
}
