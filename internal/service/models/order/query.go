package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids     []int64 `json:"ids,omitempty"`
	UserIds []int64 `json:"userIds,omitempty"`
	Limit   int     `json:"limit,omitempty"`
	Offset  int     `json:"offset,omitempty"`
}

// QueryExpansion controls which references get resolved inline on reads.
type QueryExpansion struct {
	// User resolves the ordering user's directory summary.
	User bool
	// Products resolves each item's catalog summary, category included.
	Products bool
}
