// Package redis provides a Redis-backed session registry. Sessions are
// stored as a forward mapping from session id to user id, plus a per-user
// set of live session ids so that all of a user's sessions can be torn
// down together.
package redis

import (
	"context"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/lajom/gatekeep/core"
	"github.com/lajom/gatekeep/pkg/crypto"
)

const defaultPrefix = "gatekeep"

// destroyScript removes the forward mapping and the set membership in
// one round trip, so a crash between the two cannot leave a session id
// orphaned in the user's set.
var destroyScript = goredis.NewScript(`
local uid = redis.call("GET", KEYS[1])
if not uid then
	return 0
end
redis.call("DEL", KEYS[1])
redis.call("SREM", ARGV[1] .. uid, ARGV[2])
return 1
`)

// Registry implements core.SessionRegistry on a Redis client. The
// client is caller-owned; Registry never closes it.
type Registry struct {
	client goredis.UniversalClient
	prefix string
}

var _ core.SessionRegistry = (*Registry)(nil)

func NewRegistry(client goredis.UniversalClient, prefix string) *Registry {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Registry{client: client, prefix: prefix}
}

func (r *Registry) sessionKey(sessionID string) string {
	return r.prefix + ":sess:" + sessionID
}

func (r *Registry) userKey(userID string) string {
	return r.prefix + ":user:" + userID
}

// Create mints a session id for userID and records it. Returns "" for a
// blank userID or when Redis is unreachable; a blank id is never a live
// session.
func (r *Registry) Create(ctx context.Context, userID string) string {
	if strings.TrimSpace(userID) == "" {
		return ""
	}

	sessionID := crypto.NewToken()

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.sessionKey(sessionID), userID, 0)
	pipe.SAdd(ctx, r.userKey(userID), sessionID)
	if _, err := pipe.Exec(ctx); err != nil {
		return ""
	}
	return sessionID
}

// Resolve looks up the user behind sessionID without touching state.
func (r *Registry) Resolve(ctx context.Context, sessionID string) (string, bool) {
	if sessionID == "" {
		return "", false
	}
	userID, err := r.client.Get(ctx, r.sessionKey(sessionID)).Result()
	if err != nil {
		return "", false
	}
	return userID, true
}

// Destroy removes sessionID. Returns false when the session did not
// exist, so destroying twice reports false the second time.
func (r *Registry) Destroy(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}
	removed, err := destroyScript.Run(ctx, r.client,
		[]string{r.sessionKey(sessionID)},
		r.prefix+":user:", sessionID,
	).Int()
	if err != nil {
		return false
	}
	return removed == 1
}

// DestroyUser removes every session belonging to userID and returns how
// many were removed.
func (r *Registry) DestroyUser(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}

	sessionIDs, err := r.client.SMembers(ctx, r.userKey(userID)).Result()
	if err != nil || len(sessionIDs) == 0 {
		return 0
	}

	sessionKeys := make([]string, 0, len(sessionIDs))
	for _, sid := range sessionIDs {
		sessionKeys = append(sessionKeys, r.sessionKey(sid))
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, sessionKeys...)
	pipe.Del(ctx, r.userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0
	}
	return int(del.Val())
}
