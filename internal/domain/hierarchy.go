package domain

// groupKeySeparator joins folder and language into a grouping key. Folder
// validation rejects control characters and language tags are fixed
// identifiers, so the separator can never occur inside either part.
const groupKeySeparator = "\x00"

// SetSummary is a set as listed inside a folder group.
type SetSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"setName"`
	Description  string `json:"description"`
	DateCreated  Date   `json:"dateCreated"`
	DateModified Date   `json:"dateModified"`
}

// FolderGroup is one node of the folder -> sets view served to read clients.
// Two languages may share a folder name; they form separate groups.
type FolderGroup struct {
	Folder   string       `json:"folder"`
	Language Language     `json:"langOfSet"`
	Sets     []SetSummary `json:"sets"`
}

// ProjectHierarchy groups set rows by (folder, language). Groups appear in
// the order their first row was seen and sets keep their input order.
func ProjectHierarchy(rows []*Set) []FolderGroup {
	groups := make([]FolderGroup, 0)
	index := make(map[string]int)

	for _, row := range rows {
		if row == nil {
			continue
		}
		key := row.Folder + groupKeySeparator + string(row.Language)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, FolderGroup{
				Folder:   row.Folder,
				Language: row.Language,
				Sets:     []SetSummary{},
			})
		}
		groups[i].Sets = append(groups[i].Sets, SetSummary{
			ID:           row.ID,
			Name:         row.Name,
			Description:  row.Description,
			DateCreated:  row.DateCreated,
			DateModified: row.DateModified,
		})
	}

	return groups
}
