package memory

import (
	"github.com/viant/changegate/model/changeset"
	"github.com/viant/changegate/service/dao"
	"github.com/viant/changegate/service/dao/store"
)

// New creates an in-memory change set DAO.
func New() dao.Service[string, changeset.ChangeSet] {
	return store.NewMemoryStore[string, changeset.ChangeSet](func(c *changeset.ChangeSet) string {
		return c.ID
	})
}
