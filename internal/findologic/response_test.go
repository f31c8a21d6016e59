package findologic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `<?xml version="1.0" encoding="UTF-8"?>
<searchResult>
  <results>
    <count>1808</count>
  </results>
  <products>
    <product id="101"/>
    <product id="102"/>
  </products>
  <filters>
    <filter>
      <name>price</name>
      <display>Preis</display>
      <select>single</select>
      <type>range-slider</type>
      <attributes>
        <totalRange>
          <min>0.39</min>
          <max>2239.1</max>
        </totalRange>
        <selectedRange>
          <min>0.39</min>
          <max>2239.1</max>
        </selectedRange>
        <unit>EUR</unit>
      </attributes>
    </filter>
    <filter>
      <name>vendor</name>
      <display>Hersteller</display>
      <select>multiple</select>
      <type>label</type>
      <items>
        <item>
          <name>Trelock</name>
          <frequency>17</frequency>
        </item>
      </items>
    </filter>
  </filters>
</searchResult>`

func TestParseResponse(t *testing.T) {
	resp, err := ParseResponse([]byte(sampleResponse))
	require.NoError(t, err)

	assert.Equal(t, 1808, resp.Results.Count)

	require.Len(t, resp.Products.Products, 2)
	assert.Equal(t, "101", resp.Products.Products[0].ID)

	require.Len(t, resp.Filters.Filters, 2)

	price := resp.Filters.Filters[0]
	assert.Equal(t, "price", price.Name)
	assert.Equal(t, FilterTypeRangeSlider, price.Type)
	require.NotNil(t, price.Attributes)
	assert.Equal(t, 0.39, price.Attributes.TotalRange.Min)
	assert.Equal(t, 2239.1, price.Attributes.TotalRange.Max)
	assert.Equal(t, "EUR", price.Attributes.Unit)

	vendor := resp.Filters.Filters[1]
	assert.Equal(t, "vendor", vendor.Name)
	assert.Equal(t, SelectMultiple, vendor.Select)
	require.Len(t, vendor.Items, 1)
	assert.Equal(t, "Trelock", vendor.Items[0].Name)
	assert.Equal(t, 17, vendor.Items[0].Frequency)
}

func TestParseResponseMalformed(t *testing.T) {
	_, err := ParseResponse([]byte("<searchResult><results>"))
	assert.Error(t, err)
}
