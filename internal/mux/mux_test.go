package mux

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"weizen-server/internal/config"
	"weizen-server/internal/jwt"
	"weizen-server/internal/util"
	"weizen-server/pkg/account"
)

var cbg = context.Background()

func setupJWT() {
	_ = os.Setenv("WZN_JWT_PUBLIC_KEY", filepath.Join("..", "jwt", "testdata", "public.pem"))
	_ = os.Setenv("WZN_JWT_PRIVATE_KEY", filepath.Join("..", "jwt", "testdata", "private.key"))

	if err := config.Load(); err != nil {
		panic(err)
	}

	jwt.LoadKeys()
}

// player creates a verified player and returns it along with a signed JWT
func player() (*account.Player, string) {
	p, err := account.CreatePlayer(cbg, util.RandomEmail(), "Test Player", "password", "")
	if err != nil {
		panic(err)
	}

	p.Verified = true
	if err := p.Save(cbg); err != nil {
		panic(err)
	}

	token, err := jwt.Sign(p.ID)
	if err != nil {
		panic(err)
	}

	return p, token
}

func Test_authRouter(t *testing.T) {
	setupJWT()
	m := NewMux("")

	m.authRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	p, token := player()

	// test using auth header
	var str string
	resp := assertGetWithResp(t, ts, "/test", &str, 200, token)
	assert.Equal(t, "OK", str)
	assert.Equal(t, strconv.FormatInt(p.ID, 10), resp.Header.Get("Weizen-UserID"))
	_ = resp.Body.Close()

	// test using query parameter
	resp = assertGetWithResp(t, ts, "/test?access_token="+url.QueryEscape(token), &str, 200)
	assert.Equal(t, "OK", str)
	assert.Equal(t, strconv.FormatInt(p.ID, 10), resp.Header.Get("Weizen-UserID"))
	_ = resp.Body.Close()
}

func Test_adminRouter(t *testing.T) {
	setupJWT()
	m := NewMux("")

	m.adminRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	p, token := player()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 403, token)
	assert.Equal(t, "Forbidden", errObj.Message)

	_ = p.SetIsSiteAdmin(cbg, true)

	var str string
	assertGet(t, ts, "/test", &str, 200, token)
	assert.Equal(t, "OK", str)
}
