// Package drift detects schema drift by comparing the CREATE TABLE statements
// rendered from schema files against the ones a live database reports.
// Tables are hashed individually and combined into a merkle root so that a
// match is a single comparison and a mismatch can be drilled into per table.
package drift

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/cbergoon/merkletree"

	"github.com/hlop3z/osql/internal/alerr"
)

// Hash is the merkle fingerprint of a set of tables.
type Hash struct {
	Root   string                // Root hash of all tables
	Tables map[string]*TableHash // Per-table hashes keyed by lower-cased name
}

// TableHash is the fingerprint of one CREATE TABLE statement.
type TableHash struct {
	Name        string            // Table name as given
	Hash        string            // Hash of the normalized statement
	Definitions map[string]string // Column name or table constraint -> hash
}

// tableContent implements merkletree.Content for table-level hashing.
type tableContent struct {
	name string
	hash string
}

func (t tableContent) CalculateHash() ([]byte, error) {
	h := sha256.Sum256([]byte(t.name + ":" + t.hash))
	return h[:], nil
}

func (t tableContent) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(tableContent)
	if !ok {
		return false, nil
	}
	return t.name == o.name && t.hash == o.hash, nil
}

// Fingerprint hashes stmts, a map of table name to CREATE TABLE statement.
func Fingerprint(stmts map[string]string) (*Hash, error) {
	result := &Hash{Tables: make(map[string]*TableHash, len(stmts))}
	if len(stmts) == 0 {
		result.Root = emptyHash()
		return result, nil
	}

	for name, sql := range stmts {
		key := strings.ToLower(name)
		if _, dup := result.Tables[key]; dup {
			return nil, alerr.Newf(alerr.ErrSchemaDuplicate, "table %q is defined more than once", name).WithTable(name)
		}
		result.Tables[key] = computeTableHash(name, sql)
	}

	keys := make([]string, 0, len(result.Tables))
	for k := range result.Tables {
		keys = append(keys, k)
	}
	sort.Strings(keys) // merkle leaves must be ordered for a stable root

	contents := make([]merkletree.Content, 0, len(keys))
	for _, k := range keys {
		contents = append(contents, tableContent{name: k, hash: result.Tables[k].Hash})
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return nil, alerr.Wrap(alerr.EInternalError, err, "failed to build merkle tree")
	}
	result.Root = hex.EncodeToString(tree.MerkleRoot())
	return result, nil
}

func computeTableHash(name, sql string) *TableHash {
	normalized := Normalize(sql)
	th := &TableHash{
		Name:        name,
		Hash:        hashString(normalized),
		Definitions: make(map[string]string),
	}
	for _, def := range Definitions(normalized) {
		th.Definitions[definitionKey(def)] = hashString(def)
	}
	return th
}

// hashString computes SHA256 hash of a string and returns hex encoding.
func hashString(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// emptyHash returns a consistent hash for an empty set of tables.
func emptyHash() string {
	return hashString("empty_schema")
}

// Comparison is the result of comparing two fingerprints.
type Comparison struct {
	Match        bool                  // True if the root hashes are equal
	ExpectedRoot string                // Root of the schema files
	ActualRoot   string                // Root of the database
	Missing      []string              // Tables only in the schema files
	Extra        []string              // Tables only in the database
	Changed      map[string]*TableDiff // Tables present in both with different statements
}

// ChangedTables returns the names of the changed tables, sorted.
func (c *Comparison) ChangedTables() []string {
	names := make([]string, 0, len(c.Changed))
	for name := range c.Changed {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TableDiff lists the definitions that differ within one table.
type TableDiff struct {
	Name     string
	Missing  []string // Definitions only in the schema files
	Extra    []string // Definitions only in the database
	Modified []string // Definitions present in both with different text
}

// HasDifferences reports whether any definition differs. A table whose hash
// differs without any definition difference changed its options or name.
func (d *TableDiff) HasDifferences() bool {
	return len(d.Missing) > 0 || len(d.Extra) > 0 || len(d.Modified) > 0
}

// Compare compares two fingerprints.
func Compare(expected, actual *Hash) *Comparison {
	result := &Comparison{
		Match:        expected.Root == actual.Root,
		ExpectedRoot: expected.Root,
		ActualRoot:   actual.Root,
		Missing:      []string{},
		Extra:        []string{},
		Changed:      make(map[string]*TableDiff),
	}
	if result.Match {
		return result
	}

	for key, et := range expected.Tables {
		at, ok := actual.Tables[key]
		if !ok {
			result.Missing = append(result.Missing, et.Name)
			continue
		}
		if et.Hash != at.Hash {
			result.Changed[et.Name] = compareTableHashes(et, at)
		}
	}
	for key, at := range actual.Tables {
		if _, ok := expected.Tables[key]; !ok {
			result.Extra = append(result.Extra, at.Name)
		}
	}
	sort.Strings(result.Missing)
	sort.Strings(result.Extra)
	return result
}

func compareTableHashes(expected, actual *TableHash) *TableDiff {
	diff := &TableDiff{Name: expected.Name}
	for key, hash := range expected.Definitions {
		ah, ok := actual.Definitions[key]
		switch {
		case !ok:
			diff.Missing = append(diff.Missing, key)
		case ah != hash:
			diff.Modified = append(diff.Modified, key)
		}
	}
	for key := range actual.Definitions {
		if _, ok := expected.Definitions[key]; !ok {
			diff.Extra = append(diff.Extra, key)
		}
	}
	sort.Strings(diff.Missing)
	sort.Strings(diff.Extra)
	sort.Strings(diff.Modified)
	return diff
}
