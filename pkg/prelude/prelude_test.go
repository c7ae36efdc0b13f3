package prelude

import (
	"bytes"
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snaptrade-core/pkg/config"
	"snaptrade-core/pkg/snaptrade"
)

func newBootstrapper(t *testing.T, envFiles ...string) *bootstrapper {
	t.Helper()
	if len(envFiles) == 0 {
		envFiles = []string{filepath.Join(t.TempDir(), ".env")}
	}
	return &bootstrapper{
		envFiles:  envFiles,
		env:       config.OSEnv{},
		newClient: snaptrade.New,
	}
}

func signature(t *testing.T, c *snaptrade.Client) string {
	t.Helper()
	sig, err := c.Sign("/api/v1/snapTrade/listUsers", "clientId=X&timestamp=1", nil)
	require.NoError(t, err)
	return sig
}

func literalSignature(t *testing.T) string {
	t.Helper()
	c, err := snaptrade.New(clientID, consumerKey)
	require.NoError(t, err)
	return signature(t, c)
}

func TestExportedNames(t *testing.T) {
	fset := token.NewFileSet()
	pkgs, err := parser.ParseDir(fset, ".", func(fi os.FileInfo) bool {
		return !strings.HasSuffix(fi.Name(), "_test.go")
	}, 0)
	require.NoError(t, err)
	require.Contains(t, pkgs, "prelude")

	var exported []string
	for _, file := range pkgs["prelude"].Files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				if d.Recv == nil && d.Name.IsExported() {
					exported = append(exported, d.Name.Name)
				}
			case *ast.GenDecl:
				for _, spec := range d.Specs {
					switch s := spec.(type) {
					case *ast.TypeSpec:
						if s.Name.IsExported() {
							exported = append(exported, s.Name.Name)
						}
					case *ast.ValueSpec:
						for _, n := range s.Names {
							if n.IsExported() {
								exported = append(exported, n.Name)
							}
						}
					}
				}
			}
		}
	}

	assert.ElementsMatch(t, []string{"Pprint", "SnapTrade", "OS", "LoadDotenv", "Default"}, exported)
}

func TestBootstrapIsDeterministic(t *testing.T) {
	first, err := newBootstrapper(t).client()
	require.NoError(t, err)
	second, err := newBootstrapper(t).client()
	require.NoError(t, err)

	assert.Equal(t, first.ClientID(), second.ClientID())
	assert.Equal(t, signature(t, first), signature(t, second))
}

func TestBootstrapRunsOnce(t *testing.T) {
	calls := 0
	b := newBootstrapper(t)
	b.newClient = func(id, key string, opts ...snaptrade.Option) (*snaptrade.Client, error) {
		calls++
		return snaptrade.New(id, key, opts...)
	}

	a, err := b.client()
	require.NoError(t, err)
	c, err := b.client()
	require.NoError(t, err)

	assert.Same(t, a, c)
	assert.Equal(t, 1, calls)
}

func TestCredentialsIgnoreEnvironment(t *testing.T) {
	for _, key := range []string{
		"SNAPTRADE_CLIENT_ID", "SNAPTRADE_CONSUMER_KEY", "CLIENT_ID", "CONSUMER_KEY",
	} {
		t.Setenv(key, "from-env")
	}

	c, err := newBootstrapper(t).client()
	require.NoError(t, err)

	assert.Equal(t, clientID, c.ClientID())
	assert.Equal(t, literalSignature(t), signature(t, c))
}

func TestBootstrapWithoutEnvFile(t *testing.T) {
	c, err := newBootstrapper(t, filepath.Join(t.TempDir(), "missing.env")).client()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, clientID, c.ClientID())
}

func TestBootstrapWithUnrelatedEnvKeys(t *testing.T) {
	const key = "SNAPTRADE_CORE_PRELUDE_UNRELATED"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=hello\n"), 0o600))

	c, err := newBootstrapper(t, path).client()
	require.NoError(t, err)

	v, ok := OS.LookupEnv(key)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
	assert.Equal(t, clientID, c.ClientID())
	assert.Equal(t, literalSignature(t), signature(t, c))
}

func TestBootstrapWithMalformedEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BAD-KEY=1\n"), 0o600))

	c, err := newBootstrapper(t, path).client()
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestBootstrapConstructionError(t *testing.T) {
	calls := 0
	rejection := &snaptrade.ConstructionError{Field: "client ID", Reason: "rejected by test"}

	b := newBootstrapper(t)
	b.newClient = func(string, string, ...snaptrade.Option) (*snaptrade.Client, error) {
		calls++
		return nil, rejection
	}

	for i := 0; i < 2; i++ {
		c, err := b.client()
		assert.Nil(t, c)

		var cerr *snaptrade.ConstructionError
		require.True(t, errors.As(err, &cerr))
		assert.Same(t, rejection, cerr)
	}
	assert.Equal(t, 1, calls, "construction must not be retried")
}

func TestBootstrapRejectsBadSettings(t *testing.T) {
	t.Setenv("SNAPTRADE_BASE_URL", "not a url")

	c, err := newBootstrapper(t).client()
	assert.Nil(t, c)

	var cerr *snaptrade.ConstructionError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "base URL", cerr.Field)
}

func TestBootstrapConfigFileError(t *testing.T) {
	t.Setenv("SNAPTRADE_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	c, err := newBootstrapper(t).client()
	assert.Nil(t, c)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)

	assert.Same(t, a, b)
	assert.Equal(t, clientID, a.ClientID())
}

func TestPprint(t *testing.T) {
	var buf bytes.Buffer
	output = &buf
	t.Cleanup(func() { output = os.Stdout })

	Pprint(snaptrade.User{UserID: "alice", UserSecret: "s"}, []string{"a", "b"})

	got := buf.String()
	assert.Contains(t, got, `UserID:`)
	assert.Contains(t, got, `"alice"`)
	assert.Contains(t, got, `"b"`)
	assert.True(t, strings.HasSuffix(got, "\n"))
}

func TestLoadDotenvExport(t *testing.T) {
	const key = "SNAPTRADE_CORE_PRELUDE_LOAD"
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=1\n"), 0o600))

	require.NoError(t, LoadDotenv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "1", OS.Getenv(key))
}
