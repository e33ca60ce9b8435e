package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobflow/internal/dbx"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/projects"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/jobflow/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so services can
// run the same repository against the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Jobs(db dbx.DBTX) jobs.Repository
	Projects(db dbx.DBTX) projects.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}
