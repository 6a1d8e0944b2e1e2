// Package testutil provides test helpers for the osql project.
//
// This package includes:
//   - In-memory and file-backed SQLite setup
//   - SQL assertion helpers for comparing and validating SQL statements
//   - Error assertion helpers for checking alerr codes
//   - Golden file testing support
//
// # Golden Files
//
// Golden files are stored in the testdata/ directory of the package under
// test. Update them with:
//
//	go test ./... -update-golden
//
// # Example Usage
//
//	func TestCreateTable(t *testing.T) {
//	    db := testutil.SetupSQLite(t)
//
//	    testutil.ExecSQL(t, db, got)
//	    testutil.AssertTableExists(t, db, "users")
//	    testutil.AssertSQL(t, got, "CREATE TABLE users (id INTEGER PRIMARY KEY)")
//	}
package testutil
