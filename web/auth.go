package web

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mww/league_manager/controller"
	"github.com/mww/league_manager/model"
	"github.com/unrolled/render"
)

const issuer = "league-manager"

type claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// caller is the authenticated player making a request.
type caller struct {
	PlayerID string
	Admin    bool
}

type callerKey struct{}

// NewToken signs a bearer token for playerID. Tokens are issued out of band,
// the server only verifies them.
func NewToken(secret []byte, playerID string, admin bool, now time.Time, ttl time.Duration) (string, error) {
	if playerID == "" {
		return "", errors.New("a player id is required")
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   playerID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return tok.SignedString(secret)
}

func authenticate(secret []byte, render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(tokenStr) == "" {
				unauthorized(render, w, "not authorized")
				return
			}

			tok, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), &claims{}, func(token *jwt.Token) (any, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				unauthorized(render, w, "bad token")
				return
			}

			cl, ok := tok.Claims.(*claims)
			if !ok || cl.Subject == "" {
				unauthorized(render, w, "bad claims")
				return
			}

			ctx := context.WithValue(r.Context(), callerKey{}, caller{PlayerID: cl.Subject, Admin: cl.Admin})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func requireAdmin(render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, ok := callerFrom(r.Context()); !ok || !c.Admin {
				renderError(render, w, model.PermissionDenied("only an admin can do that"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerFrom(ctx context.Context) (caller, bool) {
	c, ok := ctx.Value(callerKey{}).(caller)
	return c, ok
}

// canManageTeam allows the captain of the primary team and admins.
func canManageTeam(ctx context.Context, ctrl controller.C, teamName string) error {
	c, ok := callerFrom(ctx)
	if !ok {
		return model.PermissionDenied("not authenticated")
	}
	if c.Admin {
		return nil
	}

	team, err := ctrl.GetTeam(ctx, model.CompetitionPrimary, teamName)
	if err != nil {
		return err
	}
	if !team.IsCaptain(c.PlayerID) {
		return model.PermissionDenied("only the captain of '%s' can do that", team.Name)
	}
	return nil
}

// canPlay allows the captain of either team and admins. A team that no longer
// exists has no captain.
func canPlay(ctx context.Context, ctrl controller.C, comp model.Competition, team1, team2 string) error {
	c, ok := callerFrom(ctx)
	if !ok {
		return model.PermissionDenied("not authenticated")
	}
	if c.Admin {
		return nil
	}

	for _, name := range []string{team1, team2} {
		team, err := ctrl.GetTeam(ctx, comp, name)
		if err != nil {
			if model.KindOf(err) == model.KindNotFound {
				continue
			}
			return err
		}
		if team.IsCaptain(c.PlayerID) {
			return nil
		}
	}
	return model.PermissionDenied("only a captain of '%s' or '%s' can do that", team1, team2)
}
