package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Models: []Model{
			{Name: "item", Path: "/items/{id}"},
		},
		Resources: []Resource{
			{Model: "item", Handler: "item.view", Method: "GET"},
		},
	}
}

func TestValidateNormalizes(t *testing.T) {
	cfg := Config{
		Models: []Model{
			{Name: " item ", Path: "items/{id}/"},
		},
		Resources: []Resource{
			{Model: "item", Handler: " item.view ", View: " edit ", Method: " post "},
		},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "item", cfg.Models[0].Name)
	assert.Equal(t, "/items/{id}", cfg.Models[0].Path)
	assert.Equal(t, "item.view", cfg.Resources[0].Handler)
	assert.Equal(t, "edit", cfg.Resources[0].View)
	assert.Equal(t, "POST", cfg.Resources[0].Method)
}

func TestValidateDefaultsMethodToGet(t *testing.T) {
	cfg := validConfig()
	cfg.Resources[0].Method = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "GET", cfg.Resources[0].Method)
}

func TestValidateEmptyViewIsDefaultView(t *testing.T) {
	cfg := validConfig()
	cfg.Resources[0].View = ""
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "", cfg.Resources[0].View)
}

func TestValidateRequiresModels(t *testing.T) {
	cfg := validConfig()
	cfg.Models = nil
	assert.EqualError(t, cfg.Validate(), "no models defined")
}

func TestValidateRequiresResources(t *testing.T) {
	cfg := validConfig()
	cfg.Resources = nil
	assert.EqualError(t, cfg.Validate(), "no resources defined")
}

func TestValidateRejectsDuplicateModels(t *testing.T) {
	cfg := validConfig()
	cfg.Models = append(cfg.Models, Model{Name: "item", Path: "/other/{id}"})
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate name "item"`)

	cfg = validConfig()
	cfg.Models = append(cfg.Models, Model{Name: "other", Path: "/items/{id}"})
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate path")
}

func TestValidateRejectsUnknownResourceModel(t *testing.T) {
	cfg := validConfig()
	cfg.Resources[0].Model = "ghost"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `model "ghost" not defined`)
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cfg := validConfig()
	cfg.Models[0].Path = ""
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Resources[0].Handler = ""
	require.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Resources[0].Model = " "
	require.Error(t, cfg.Validate())
}
