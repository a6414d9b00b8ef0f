package types

import (
	"errors"
	"net/url"
	"os"
	"regexp"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/converge/internal/models"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

var screamingSnake = regexp.MustCompile(`^[A-Z0-9]+(_[A-Z0-9]+)*$`)

func TestEveryTagHasAWireName(t *testing.T) {
	seen := map[string]appErr.Tag{}
	for _, tag := range appErr.AllTags() {
		name := WireTag(tag)
		assert.NotEmpty(t, name, tag.String())
		assert.Regexp(t, screamingSnake, name)
		if prev, dup := seen[name]; dup {
			t.Errorf("%s and %s share wire name %s", prev, tag, name)
		}
		seen[name] = tag
	}
	assert.Equal(t, "UNKNOWN", WireTag(appErr.Tag(99999)))
}

func TestFromEngineErrorSanitizes(t *testing.T) {
	ee := appErr.WrapEngine(appErr.TagHelmChartsUpgradeError, appErr.EventDetails{ExecutionID: "exec"},
		"Error while upgrading helm charts.", errors.New("helm failed with AWS_SECRET_ACCESS_KEY=s3cr3t"))
	ee.Underlying.WithEnv(map[string]string{"AWS_SECRET_ACCESS_KEY": "s3cr3t"})
	ee = ee.WithHint("check the chart values")
	ee = ee.WithLink(&url.URL{Scheme: "https", Host: "docs.example.com", Path: "/helm"})

	resp := FromEngineError(ee)
	require.NotNil(t, resp)
	assert.Equal(t, "HELM_CHARTS_UPGRADE_ERROR", resp.Tag)
	assert.Equal(t, "Error while upgrading helm charts.", resp.UserLogMessage)
	assert.Equal(t, "check the chart values", resp.HintMessage)
	assert.Equal(t, "https://docs.example.com/helm", resp.Link)
	require.NotNil(t, resp.UnderlyingError)
	assert.NotContains(t, resp.UnderlyingError.FullDetails, "s3cr3t")
}

func TestFromEngineErrorFallbacks(t *testing.T) {
	assert.Nil(t, FromEngineError(nil))

	resp := FromEngineError(errors.New("plain failure"))
	assert.Equal(t, "UNKNOWN", resp.Tag)
	assert.Equal(t, "Unknown error.", resp.UserLogMessage)
	require.NotNil(t, resp.UnderlyingError)
	assert.Equal(t, "Unknown error.", resp.UnderlyingError.Message)

	resp = FromEngineError(appErr.NewEngine(appErr.Tag(424242), appErr.EventDetails{}, "new kind"))
	assert.Equal(t, "UNKNOWN", resp.Tag)
	assert.Equal(t, "new kind", resp.UserLogMessage)
}

func TestFromAppError(t *testing.T) {
	got := FromAppError(appErr.New(appErr.CodeNotFound, "execution not found"))
	assert.Equal(t, &APIError{Code: string(appErr.CodeNotFound), Message: "execution not found"}, got)
	assert.Equal(t, string(appErr.CodeUnknown), FromAppError(errors.New("x")).Code)
}

func environmentRequest() EnvironmentRequest {
	return EnvironmentRequest{
		OrganizationID: "org",
		ClusterID:      "cluster",
		Action:         models.ActionCreate,
		Environment:    models.Environment{LongID: "env", Namespace: "ns1"},
		Databases: []DatabaseRequest{{
			LongID:        "0badbeef-0000-4000-8000-000000000003",
			Name:          "pg",
			Type:          "POSTGRESQL",
			Mode:          "CONTAINER",
			Version:       "15",
			TotalCPUs:     "500m",
			TotalRAMInMiB: 512,
			DiskSizeInGiB: 10,
			Port:          5432,
			Username:      "admin",
			Password:      "secret",
		}},
		Applications: []ApplicationRequest{{
			LongID:       "0badcafe-0000-4000-8000-000000000001",
			Action:       models.ActionPause,
			Name:         "web",
			Image:        "nginx:1.27",
			Ports:        []PortRequest{{Port: 8080, PubliclyAccessible: true}},
			EnvVars:      map[string]string{"B": "2", "A": "1"},
			MinInstances: 1,
			MaxInstances: 2,
		}},
		Routers: []RouterRequest{{
			LongID:        "0badf00d-0000-4000-8000-000000000002",
			Name:          "edge",
			DefaultDomain: "edge.example.com",
			Routes:        []RouteRequest{{Path: "/", ApplicationLongID: "0badcafe-0000-4000-8000-000000000001"}},
		}},
	}
}

func TestEnvironmentRequestValidates(t *testing.T) {
	v := validator.New(validator.WithRequiredStructEnabled())
	require.NoError(t, v.Struct(environmentRequest()))

	bad := environmentRequest()
	bad.Databases[0].Type = "CASSANDRA"
	assert.Error(t, v.Struct(bad))
}

func TestToDomain(t *testing.T) {
	execCtx := models.Context{
		ProviderKind:     models.ProviderAWS,
		ExecutionID:      "exec-1",
		WorkspaceRootDir: t.TempDir(),
		LibRootDir:       "/lib",
	}
	set, err := environmentRequest().ToDomain(execCtx)
	require.NoError(t, err)

	require.Len(t, set.Databases, 1)
	assert.Equal(t, models.ActionCreate, set.Databases[0].Action(), "inherits the environment action")
	assert.False(t, set.Databases[0].IsManagedService())

	require.Len(t, set.Applications, 1)
	assert.Equal(t, models.ActionPause, set.Applications[0].Action())

	require.Len(t, set.Routers, 1)
	assert.Equal(t, "router-z0badf00", set.Routers[0].HelmReleaseName())
}

func TestToDomainRejectsBadInput(t *testing.T) {
	execCtx := models.Context{ProviderKind: models.ProviderAWS, ExecutionID: "exec-1", WorkspaceRootDir: t.TempDir()}

	req := environmentRequest()
	req.Applications[0].LongID = "not-a-uuid"
	_, err := req.ToDomain(execCtx)
	assert.True(t, appErr.IsTag(err, appErr.TagInvalidEngineApiInputCannotBeDeserialized))

	req = environmentRequest()
	req.Databases[0].DatabaseInstanceType = "DB-DEV-S"
	req.Databases[0].Mode = "MANAGED"
	_, err = req.ToDomain(execCtx)
	kind, ok := appErr.DatabaseErrorKindOf(err)
	require.True(t, ok)
	assert.Equal(t, appErr.DatabaseErrInstanceTypeMismatchCloudProvider, kind)
}
