package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/bienestar-app/bienestar/internal/ctxkeys"
	"github.com/bienestar-app/bienestar/internal/model"
	"github.com/bienestar-app/bienestar/internal/render"
	"github.com/bienestar-app/bienestar/internal/service"
)

// AuthMiddleware resolves a Bearer token into user + profile on the context.
// Requests without a valid token continue anonymously; RequireAuth rejects them.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := authService.VerifyJWT(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := userService.ByID(claims.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			// Security: keep the password hash out of the request context
			user.PasswordHash = nil

			profile, err := profileService.ByUserID(claims.UserID)
			if err != nil {
				slog.Warn("authenticated user has no profile", "user_id", claims.UserID, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithProfile(ctx, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth answers 401 when no user is on the context.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil || ctxkeys.Profile(r.Context()) == nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			render.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

// RequireRole allows only the listed roles and implies RequireAuth.
func RequireRole(roles ...model.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return RequireAuth(func(w http.ResponseWriter, r *http.Request) {
			profile := ctxkeys.Profile(r.Context())
			if !slices.Contains(roles, profile.Role) {
				render.Error(w, http.StatusForbidden, "not allowed for this account")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
