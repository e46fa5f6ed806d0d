package enrich

var ChainBrands = chainBrands
