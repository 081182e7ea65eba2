package providers

import (
	"github.com/samber/do/v2"

	"github.com/shelfmark/shelfmark-server/internal/config"
	"github.com/shelfmark/shelfmark-server/internal/logger"
	"github.com/shelfmark/shelfmark-server/internal/service"
)

// ProvideServices provides the wired service layer.
func ProvideServices(i do.Injector) (*service.Services, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	cacheHandle := do.MustInvoke[*CacheHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)

	return service.New(storeHandle.Store, cacheHandle.Cache, indexHandle.Index, cfg.Cache, log.Logger), nil
}
