package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_HeatConductionDump(t *testing.T) {
	raw := []byte(`{
		"blocks": {
			"Kernels": {
				"HeatConduction": {"parameters": {"diffusion_coeff": {"cpp_type": "double"}}}
			},
			"Mesh": {
				"GeneratedMesh": {"parameters": {"nx": {"cpp_type": "int"}}}
			}
		}
	}`)

	objects, syntaxMap, err := Build(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"Kernels/HeatConduction", "Mesh/GeneratedMesh"}, objects)
	assert.Equal(t, "[Kernels]\n  type = HeatConduction\n  diffusion_coeff = \n[../]",
		syntaxMap["Kernels/HeatConduction"])
	assert.Equal(t, "[Mesh]\n  type = GeneratedMesh\n  nx = \n[../]",
		syntaxMap["Mesh/GeneratedMesh"])
}

func TestBuild_SkipLayersDoNotExtendTheChain(t *testing.T) {
	raw := []byte(`{
		"blocks": {
			"Kernels": {
				"star": {
					"subblock_types": {
						"Diffusion": {"parameters": {"variable": {}, "block": {}}}
					}
				}
			}
		}
	}`)

	objects, syntaxMap, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kernels/Diffusion"}, objects)
	// Parameters must be found through the skip layers too, in declared order.
	assert.Equal(t, "[Kernels]\n  type = Diffusion\n  variable = \n  block = \n[../]",
		syntaxMap["Kernels/Diffusion"])
}

func TestBuild_ParametersKeepDeclaredOrder(t *testing.T) {
	// Declared order is not alphabetical here on purpose.
	raw := []byte(`{
		"blocks": {
			"Kernels": {
				"HeatSource": {"parameters": {"zeta": {}, "alpha": {}, "mid": {}}}
			}
		}
	}`)

	_, syntaxMap, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, "[Kernels]\n  type = HeatSource\n  zeta = \n  alpha = \n  mid = \n[../]",
		syntaxMap["Kernels/HeatSource"])
}

func TestBuild_NoiseParametersExcludedRestInDeclaredOrder(t *testing.T) {
	raw := []byte(`{
		"blocks": {
			"BCs": {
				"DirichletBC": {"parameters": {
					"value": {}, "type": {}, "active": {}, "inactive": {}, "boundary": {}
				}}
			}
		}
	}`)

	_, syntaxMap, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, "[BCs]\n  type = DirichletBC\n  value = \n  boundary = \n[../]",
		syntaxMap["BCs/DirichletBC"])
}

func TestBuild_DeepPathsCollapseToFirstTwoKeys(t *testing.T) {
	// Two distinct deep paths under Mesh/Partitioner must produce one object.
	raw := []byte(`{
		"blocks": {
			"Mesh": {
				"Partitioner": {
					"parameters": {"part_name": {}},
					"sub_a": {"parameters": {"x": {}}},
					"sub_b": {"parameters": {"y": {}}}
				}
			}
		}
	}`)

	objects, syntaxMap, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesh/Partitioner"}, objects)
	assert.Len(t, syntaxMap, 1)
}

func TestBuild_DepthOneParametersNodeNotEmitted(t *testing.T) {
	// A parameters-bearing node directly under blocks has no object name.
	raw := []byte(`{
		"blocks": {
			"GlobalParams": {"parameters": {"foo": {}}},
			"Mesh": {"GeneratedMesh": {"parameters": {"nx": {}}}}
		}
	}`)

	objects, _, err := Build(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Mesh/GeneratedMesh"}, objects)
}

func TestBuild_ObjectListAndSyntaxMapStayBijective(t *testing.T) {
	raw := []byte(`{
		"blocks": {
			"Kernels": {
				"HeatConduction": {"parameters": {"diffusion_coeff": {}}},
				"Diffusion": {"parameters": {"variable": {}}}
			},
			"Outputs": {
				"star": {"CSV": {"parameters": {"file_base": {}}}}
			}
		}
	}`)

	objects, syntaxMap, err := Build(raw)
	require.NoError(t, err)

	require.Len(t, syntaxMap, len(objects))
	for _, o := range objects {
		assert.Contains(t, syntaxMap, o)
	}
	assert.IsIncreasing(t, objects)
}

func TestBuild_MalformedDocument(t *testing.T) {
	_, _, err := Build([]byte(`{"blocks": `))
	assert.Error(t, err)
}

func TestBuild_NoObjects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty blocks", `{"blocks": {}}`},
		{"missing blocks", `{"something_else": {}}`},
		{"only structural layers", `{"blocks": {"Kernels": {"star": {}}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrNoObjects)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	raw := []byte(`{
		"blocks": {
			"Kernels": {
				"A": {"parameters": {"p1": {}, "p2": {}}},
				"B": {"parameters": {"q": {}}}
			},
			"Mesh": {"M": {"parameters": {}}}
		}
	}`)

	objects1, map1, err := Build(raw)
	require.NoError(t, err)
	objects2, map2, err := Build(raw)
	require.NoError(t, err)

	assert.Equal(t, objects1, objects2)
	assert.Equal(t, map1, map2)
}
