package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timereg/sendtime/internal/erp"
	"github.com/timereg/sendtime/internal/models"
)

// minSecretLength separates generated secrets from untrusted legacy values.
// Anything shorter was never produced by this system and gets replaced.
const minSecretLength = 32

// Resolver maps external logins to ERP identities. Lookups go through the
// injected cache first; misses are resolved with a privileged ERP session.
type Resolver struct {
	client        erp.Client
	cache         Cache
	adminLogin    string
	adminPassword string
	log           *zap.Logger
}

// NewResolver constructs a Resolver using the given ERP client, cache and
// administrator credentials.
func NewResolver(client erp.Client, cache Cache, adminLogin, adminPassword string, log *zap.Logger) *Resolver {
	return &Resolver{
		client:        client,
		cache:         cache,
		adminLogin:    adminLogin,
		adminPassword: adminPassword,
		log:           log,
	}
}

// Resolve returns the ERP identity for an external login. On a cache miss
// it reads the ERP user record matching the login exactly; no match yields
// *UnknownUserError. A stored credential shorter than 32 characters is
// treated as untrusted and replaced with a freshly generated secret, which
// is written back to the ERP record before the identity is cached.
func (r *Resolver) Resolve(ctx context.Context, externalID string) (models.Identity, error) {
	if id, ok := r.cache.Get(externalID); ok {
		return id, nil
	}

	session, err := r.client.OpenSession(ctx, r.adminLogin, r.adminPassword)
	if err != nil {
		return models.Identity{}, err
	}
	defer func() { _ = session.Close() }()

	filter := erp.Where("login", erp.OpEq, externalID)
	records, err := session.Read(ctx, erp.EntityUser, filter, []string{"id", "login", "password"})
	if err != nil {
		return models.Identity{}, err
	}
	if len(records) == 0 {
		return models.Identity{}, &UnknownUserError{Login: externalID}
	}

	user := records[0]
	userID := user.Int("id")
	secret := user.Str("password")

	if len(secret) < minSecretLength {
		secret = newSecret()
		values := map[string]any{"password": secret}
		if err := session.Write(ctx, erp.EntityUser, []int64{userID}, values); err != nil {
			return models.Identity{}, err
		}
		r.log.Info("rotated ERP credential",
			zap.String("login", externalID),
			zap.Int64("user_id", userID),
		)
	}

	id := models.Identity{ExternalID: externalID, ERPUserID: userID, Secret: secret}
	r.cache.Add(externalID, id)
	return id, nil
}

// newSecret generates a random credential derived from 16 random bytes.
func newSecret() string {
	return uuid.NewString()
}
