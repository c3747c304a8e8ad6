package groups

import (
	"pantry-app-go/internal/domain/actionlog"
	groupdomain "pantry-app-go/internal/domain/group"
	itemsdomain "pantry-app-go/internal/domain/items"
	"pantry-app-go/pkg/logger"
)

type Handlers struct {
	Groups  *groupdomain.Service
	Items   *itemsdomain.Service
	History *actionlog.Service
	log     logger.Logger
}

func New(groups *groupdomain.Service, items *itemsdomain.Service, history *actionlog.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Groups:  groups,
		Items:   items,
		History: history,
		log:     log,
	}
}
