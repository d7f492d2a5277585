package access

// Permission constants define the grantable actions in the system.
// The catalog is the source of truth for valid permission codes; checks
// against codes not listed here always resolve to "denied".
const (
	// PermContentRead allows reading content items.
	PermContentRead = "content.read"
	// PermContentCreate allows creating content items.
	PermContentCreate = "content.create"
	// PermContentUpdate allows editing content items.
	PermContentUpdate = "content.update"
	// PermContentDelete allows deleting content items.
	PermContentDelete = "content.delete"
	// PermContentPublish allows publishing content items.
	PermContentPublish = "content.publish"
	// PermContentUnpublish allows taking published content items offline.
	PermContentUnpublish = "content.unpublish"

	// PermSchemaRead allows viewing content schemas.
	PermSchemaRead = "schema.read"
	// PermSchemaCreate allows creating content schemas.
	PermSchemaCreate = "schema.create"
	// PermSchemaUpdate allows editing content schemas.
	PermSchemaUpdate = "schema.update"
	// PermSchemaDelete allows deleting content schemas.
	PermSchemaDelete = "schema.delete"

	// PermProjectRead allows viewing projects.
	PermProjectRead = "project.read"
	// PermProjectCreate allows creating projects.
	PermProjectCreate = "project.create"
	// PermProjectUpdate allows editing project settings.
	PermProjectUpdate = "project.update"

	// PermEnvironmentManage allows creating and configuring environments.
	PermEnvironmentManage = "environment.manage"

	// PermAssetUpload allows uploading media assets.
	PermAssetUpload = "asset.upload"
	// PermAssetDelete allows deleting media assets.
	PermAssetDelete = "asset.delete"

	// PermPlatformManage allows managing roles, permissions, and access rules.
	// It is the distinguished management permission used by the setup bypass
	// rule; holders can administer the access-control system itself.
	PermPlatformManage = "platform.manage"
)

// CatalogEntry describes one grantable action.
type CatalogEntry struct {
	Code        string
	Description string
}

// Catalog returns the static permission catalog seeded at process start.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{PermContentRead, "Read content items"},
		{PermContentCreate, "Create content items"},
		{PermContentUpdate, "Edit content items"},
		{PermContentDelete, "Delete content items"},
		{PermContentPublish, "Publish content items"},
		{PermContentUnpublish, "Take published content items offline"},
		{PermSchemaRead, "View content schemas"},
		{PermSchemaCreate, "Create content schemas"},
		{PermSchemaUpdate, "Edit content schemas"},
		{PermSchemaDelete, "Delete content schemas"},
		{PermProjectRead, "View projects"},
		{PermProjectCreate, "Create projects"},
		{PermProjectUpdate, "Edit project settings"},
		{PermEnvironmentManage, "Create and configure environments"},
		{PermAssetUpload, "Upload media assets"},
		{PermAssetDelete, "Delete media assets"},
		{PermPlatformManage, "Manage roles, permissions, and access rules"},
	}
}
