package yaentityapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/YaCodeDev/GoYaTgEntities/yacache"
	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yahash"
	"github.com/YaCodeDev/GoYaTgEntities/yalogger"
	"github.com/YaCodeDev/GoYaTgEntities/yatgmessageencoding"
)

const renderKeyPrefix = "render:"

// Renderer renders messages and keeps the results in a cache.
type Renderer struct {
	cache yacache.Store
	kinds yaentity.KindSet
	ttl   time.Duration
}

// NewRenderer returns a renderer restricted to kinds. Rendered text is cached for ttl.
func NewRenderer(cache yacache.Store, kinds yaentity.KindSet, ttl time.Duration) *Renderer {
	return &Renderer{
		cache: cache,
		kinds: kinds,
		ttl:   ttl,
	}
}

// Render renders msg with the named encoding. cached reports whether the text came
// from the cache. Cache failures are logged and never fail the render.
func (r *Renderer) Render(
	ctx context.Context,
	encodingName string,
	msg *yaentity.Message,
	log yalogger.Logger,
) (text string, cached bool, yaErr yaerrors.Error) {
	encoding, yaErr := yatgmessageencoding.ByName(encodingName, yatgmessageencoding.WithKinds(r.kinds))
	if yaErr != nil {
		return "", false, yaErr.Wrap("render message")
	}

	mainKey, childKey, yaErr := r.keys(encoding.Name(), msg)
	if yaErr != nil {
		return "", false, yaErr.Wrap("render message")
	}

	text, yaErr = r.cache.HGet(ctx, mainKey, childKey)
	if yaErr == nil {
		return text, true, nil
	}

	if !errors.Is(yaErr, yacache.ErrNotFound) {
		log.Warnf("Render cache is unavailable: %v", yaErr)
	}

	text, yaErr = encoding.Unparse(msg.Text, msg.Entities)
	if yaErr != nil {
		return "", false, yaErr.Wrap("render message")
	}

	if err := r.cache.HSetEX(ctx, mainKey, childKey, text, r.ttl); err != nil {
		log.Warnf("Failed to cache rendered message: %v", err)
	}

	return text, false, nil
}

func (r *Renderer) keys(encodingName string, msg *yaentity.Message) (string, string, yaerrors.Error) {
	entities := msg.Entities
	if entities == nil {
		entities = []yaentity.Entity{}
	}

	canonical, err := json.Marshal(entities)
	if err != nil {
		return "", "", yaerrors.FromError(http.StatusBadRequest, err, "encode cache key")
	}

	return renderKeyPrefix + encodingName, yahash.FNVStringToHex(msg.Text, string(canonical), r.kinds.String()), nil
}
