package mysql

// Note: `row` is reserved; keep it quoted everywhere.
const insertRowsPrefix = "INSERT INTO enriched_hotels\n" +
	"  (run_id, row_index, nom_commercial, code_postal, department, region, capacity_range, size_segment,\n" +
	"   restaurant_flag, spa_flag, hotel_domain, independent_or_group, group_name,\n" +
	"   large_property_flag, boutique_flag, hotel_context, `row`)\nVALUES "

const rowPlaceholders = "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"

const deleteRunSQL = `DELETE FROM enriched_hotels WHERE run_id = ?`

const countRunSQL = `SELECT COUNT(*) FROM enriched_hotels WHERE run_id = ?`

const getRowSQL = "SELECT `row` FROM enriched_hotels WHERE run_id = ? AND row_index = ?"

const countByOwnershipSQL = `
SELECT independent_or_group, COUNT(*)
FROM enriched_hotels
WHERE run_id = ?
GROUP BY independent_or_group
`
