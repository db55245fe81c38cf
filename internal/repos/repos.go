package repos

import (
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
)

// lockForUpdate takes row locks on postgres only. The sqlite database used in
// tests rejects FOR UPDATE syntactically and serializes writers on the
// connection instead.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
  if tx.Dialector.Name() == "postgres" {
    return tx.Clauses(clause.Locking{Strength: "UPDATE"})
  }
  return tx
}
