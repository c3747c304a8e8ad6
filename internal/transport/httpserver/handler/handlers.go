package handler

import (
	commonhandler "pantry-app-go/internal/transport/httpserver/handler/common"
	groupshandler "pantry-app-go/internal/transport/httpserver/handler/groups"
)

type Handlers struct {
	Common *commonhandler.Handlers
	Groups *groupshandler.Handlers
}

func New(common *commonhandler.Handlers, groups *groupshandler.Handlers) *Handlers {
	return &Handlers{
		Common: common,
		Groups: groups,
	}
}
