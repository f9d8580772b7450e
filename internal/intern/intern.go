// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package intern provides an interning table abstraction to optimize symbol
// resolution.
//
// apigen uses this package for the type pool's name table: typepool.Pool
// keys its registered declaration names by ID, so its name lookups and
// duplicate-name checks compare integers instead of strings. Field and
// parameter names are not interned.
package intern

import (
	"fmt"
	"strings"
	"sync"
)

// ID is an interned string in a particular [Table].
//
// IDs can be compared very cheaply. The zero value of ID always corresponds
// to the empty string.
type ID int32

// String implements [fmt.Stringer].
//
// Note that this will not convert the ID back into a string; to do that you
// must call [Table.Value].
func (id ID) String() string {
	if id == 0 {
		return `intern.ID("")`
	}
	return fmt.Sprintf("intern.ID(%d)", int(id))
}

// GoString implements [fmt.GoStringer].
func (id ID) GoString() string { return id.String() }

// Table is an interning table.
//
// A table can be used to convert strings into [ID]s and back again.
//
// The zero value of Table is empty and ready to use.
type Table struct {
	mu    sync.RWMutex
	index map[string]ID
	table []string
}

// Intern interns the given string into this table.
//
// This function may be called by multiple goroutines concurrently.
func (t *Table) Intern(s string) ID {
	if s == "" {
		return 0
	}

	t.mu.RLock()
	id, ok := t.index[s]
	t.mu.RUnlock()
	if ok {
		return id
	}

	// Intern tables are expected to be long-lived. Avoid holding onto a
	// larger buffer s might be an internal pointer to by cloning it.
	s = strings.Clone(s)

	t.mu.Lock()
	defer t.mu.Unlock()

	// Someone may have raced us to intern this string between the RUnlock
	// and the Lock above.
	if id, ok := t.index[s]; ok {
		return id
	}

	t.table = append(t.table, s)

	// The first ID has value 1; ID 0 is reserved for "".
	id = ID(len(t.table))
	if id < 0 {
		panic(fmt.Sprintf("internal/intern: %d interning IDs exhausted", len(t.table)))
	}

	if t.index == nil {
		t.index = make(map[string]ID)
	}
	t.index[s] = id

	return id
}

// Value converts an [ID] back into its corresponding string.
//
// If id was created by a different [Table], the results are unspecified,
// including potentially a panic.
//
// This function may be called by multiple goroutines concurrently.
func (t *Table) Value(id ID) string {
	if id == 0 {
		return ""
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table[int(id)-1]
}
