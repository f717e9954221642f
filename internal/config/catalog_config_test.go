package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const catalogYaml = `
categories:
  - id: sound-systems
    name: Sound Systems
    icon: "🔊"
    description: Speakers and mixers
    product_count: 2
products:
  - id: speaker-jbl
    name: JBL Speaker
    category: sound-systems
    description: powerful bass
    image: /img/jbl.jpg
    price_per_day: "499.50"
    available: true
    specifications:
      - "500W"
      - "Bluetooth 5.0"
`

func TestLoadCatalogConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYaml), 0644))

	catalog, err := LoadCatalogConfig(path)
	require.NoError(t, err)
	require.Len(t, catalog.Categories, 1)
	require.Len(t, catalog.Products, 1)

	categories := catalog.ToCategoryModels()
	require.Equal(t, "sound-systems", categories[0].ID)
	require.Equal(t, "Sound Systems", categories[0].Name)

	products, err := catalog.ToProductModels()
	require.NoError(t, err)
	require.Equal(t, "speaker-jbl", products[0].ID)
	require.Equal(t, "499.5", products[0].PricePerDay.String(), "價格經字串轉decimal")
	require.Equal(t, []string{"/img/jbl.jpg"}, products[0].Images)
	require.Equal(t, 1, products[0].MinimumRentalDays)
	require.True(t, products[0].IsAvailable)
}

func TestLoadCatalogConfigMissingFile(t *testing.T) {
	_, err := LoadCatalogConfig(filepath.Join(t.TempDir(), "no-such.yaml"))
	require.Error(t, err)
}

func TestToProductModelsBadPrice(t *testing.T) {
	catalog := &CatalogConfig{
		Products: []CatalogProduct{{ID: "p1", PricePerDay: "free"}},
	}
	_, err := catalog.ToProductModels()
	require.Error(t, err, "價格解析失敗整份檔案視為無效")
}
