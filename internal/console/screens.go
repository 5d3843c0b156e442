package console

import (
	"fileadmin/internal/client"
	"fileadmin/internal/domain"
	"fileadmin/internal/listview"
	"fileadmin/internal/notify"
	"fileadmin/pkg/tabular"
)

// RegisterScreens mounts every console screen on the router. Each screen is
// one configuration of the same pipeline: endpoint, searchable fields,
// categorical filters and export columns. pageSize is the configured default
// page size applied to every screen.
func RegisterScreens(c *Console, api *client.Client, notices *notify.Center, pageSize int) {
	fileSize := listview.WithDefaultPageSize[domain.File](pageSize)
	leaseSize := listview.WithDefaultPageSize[domain.Lease](pageSize)

	c.Register("files", NewScreenRoutes(
		listview.NewPipeline(fileScreen("files", "Files", "/files", "files"), api, notices, fileSize),
		api, notices,
		WithUpstreamParams[domain.File]("category", "from", "to"),
		WithMultipartCreate[domain.File](),
		WithDownload[domain.File]("/files/download"),
	))

	c.Register("user-home", NewScreenRoutes(
		listview.NewPipeline(fileScreen("user-home", "My Files", "/files/mine", "my-files"), api, notices, fileSize),
		api, notices,
		WithMultipartCreate[domain.File](),
		WithDownload[domain.File]("/files/download"),
	))

	c.Register("users", NewScreenRoutes(
		listview.NewPipeline(userScreen(), api, notices, listview.WithDefaultPageSize[domain.User](pageSize)),
		api, notices,
	))

	c.Register("regions", NewScreenRoutes(
		listview.NewPipeline(regionScreen(), api, notices, listview.WithDefaultPageSize[domain.Region](pageSize)),
		api, notices,
	))

	c.Register("channel-partners", NewScreenRoutes(
		listview.NewPipeline(partnerScreen(), api, notices, listview.WithDefaultPageSize[domain.ChannelPartner](pageSize)),
		api, notices,
	))

	c.Register("leases", NewScreenRoutes(
		listview.NewPipeline(leaseScreen("leases", "Leases", "/leases", "leases"), api, notices, leaseSize),
		api, notices,
	))

	c.Register("reports", NewScreenRoutes(
		listview.NewPipeline(fileScreen("reports", "File Reports", "/reports/files", "file-report"), api, notices, fileSize),
		api, notices,
		WithUpstreamParams[domain.File]("category", "from", "to"),
	))

	c.Register("lease-reports", NewScreenRoutes(
		listview.NewPipeline(leaseScreen("lease-reports", "Lease Reports", "/reports/leases", "lease-report"), api, notices, leaseSize),
		api, notices,
		WithUpstreamParams[domain.Lease]("from", "to"),
	))

	c.Register("user-reports", NewScreenRoutes(
		listview.NewPipeline(userReportScreen(), api, notices, fileSize),
		api, notices,
	))
}

func fileColumns() []tabular.Column[domain.File] {
	return []tabular.Column[domain.File]{
		{Header: "Name", Extract: func(f domain.File) string { return f.Name }},
		{Header: "Description", Extract: func(f domain.File) string { return domain.StringOr(f.Description, "") }},
		{Header: "Size", Extract: func(f domain.File) string { return domain.FormatFileSize(f.Size) }},
		{Header: "Owner", Extract: func(f domain.File) string { return domain.UserName(f.Owner) }},
		{Header: "Region", Extract: func(f domain.File) string { return domain.RegionName(f.Region) }},
		{Header: "Channel Partner", Extract: func(f domain.File) string { return domain.PartnerName(f.ChannelPartner) }},
		{Header: "Uploaded", Extract: func(f domain.File) string { return domain.DateOnly(f.UploadedAt) }},
		{Header: "Expires", Extract: func(f domain.File) string { return domain.DateOnly(f.ExpiryDate) }},
		{Header: "Status", Extract: func(f domain.File) string { return domain.StringOr(f.Status, "Unknown") }},
	}
}

func fileScreen(name, title, endpoint, exportPrefix string) listview.Screen[domain.File] {
	return listview.Screen[domain.File]{
		Name:         name,
		Title:        title,
		Endpoint:     endpoint,
		ExportPrefix: exportPrefix,
		SearchFields: func(f domain.File) []string {
			return []string{f.Name, domain.StringOr(f.Description, "")}
		},
		FilterFields: map[string]func(domain.File) string{
			"status":   func(f domain.File) string { return domain.StringOr(f.Status, "") },
			"category": func(f domain.File) string { return domain.StringOr(f.Category, "") },
			"region":   func(f domain.File) string { return domain.RegionName(f.Region) },
			"partner":  func(f domain.File) string { return domain.PartnerName(f.ChannelPartner) },
		},
		Validity: domain.File.ValidityAt,
		OwnedBy:  domain.File.OwnedBy,
		Columns:  fileColumns(),
	}
}

func userScreen() listview.Screen[domain.User] {
	return listview.Screen[domain.User]{
		Name:         "users",
		Title:        "Users",
		Endpoint:     "/users",
		ExportPrefix: "users",
		SearchFields: func(u domain.User) []string {
			return []string{u.Username, domain.StringOr(u.Email, ""), u.FullName()}
		},
		FilterFields: map[string]func(domain.User) string{
			"role":   func(u domain.User) string { return domain.StringOr(u.Role, "") },
			"status": func(u domain.User) string { return domain.StringOr(u.Status, "") },
		},
		Columns: []tabular.Column[domain.User]{
			{Header: "Username", Extract: func(u domain.User) string { return u.Username }},
			{Header: "Name", Extract: func(u domain.User) string { return u.FullName() }},
			{Header: "Email", Extract: func(u domain.User) string { return domain.StringOr(u.Email, "N/A") }},
			{Header: "Role", Extract: func(u domain.User) string { return domain.StringOr(u.Role, "Unknown") }},
			{Header: "Status", Extract: func(u domain.User) string { return domain.StringOr(u.Status, "Unknown") }},
			{Header: "Joined", Extract: func(u domain.User) string { return domain.DateOnly(u.CreatedAt) }},
		},
	}
}

func regionScreen() listview.Screen[domain.Region] {
	return listview.Screen[domain.Region]{
		Name:         "regions",
		Title:        "Regions",
		Endpoint:     "/regions",
		ExportPrefix: "regions",
		SearchFields: func(r domain.Region) []string {
			return []string{r.Name, domain.StringOr(r.Code, ""), domain.StringOr(r.Description, "")}
		},
		FilterFields: map[string]func(domain.Region) string{
			"status": func(r domain.Region) string { return domain.StringOr(r.Status, "") },
		},
		Columns: []tabular.Column[domain.Region]{
			{Header: "Name", Extract: func(r domain.Region) string { return r.Name }},
			{Header: "Code", Extract: func(r domain.Region) string { return domain.StringOr(r.Code, "N/A") }},
			{Header: "Description", Extract: func(r domain.Region) string { return domain.StringOr(r.Description, "") }},
			{Header: "Status", Extract: func(r domain.Region) string { return domain.StringOr(r.Status, "Unknown") }},
		},
	}
}

func partnerScreen() listview.Screen[domain.ChannelPartner] {
	return listview.Screen[domain.ChannelPartner]{
		Name:         "channel-partners",
		Title:        "Channel Partners",
		Endpoint:     "/channel-partners",
		ExportPrefix: "channel-partners",
		SearchFields: func(p domain.ChannelPartner) []string {
			return []string{p.Name, domain.StringOr(p.ContactName, ""), domain.StringOr(p.ContactEmail, "")}
		},
		FilterFields: map[string]func(domain.ChannelPartner) string{
			"status": func(p domain.ChannelPartner) string { return domain.StringOr(p.Status, "") },
			"region": func(p domain.ChannelPartner) string { return domain.RegionName(p.Region) },
		},
		Columns: []tabular.Column[domain.ChannelPartner]{
			{Header: "Name", Extract: func(p domain.ChannelPartner) string { return p.Name }},
			{Header: "Region", Extract: func(p domain.ChannelPartner) string { return domain.RegionName(p.Region) }},
			{Header: "Contact", Extract: func(p domain.ChannelPartner) string { return domain.StringOr(p.ContactName, "N/A") }},
			{Header: "Contact Email", Extract: func(p domain.ChannelPartner) string { return domain.StringOr(p.ContactEmail, "N/A") }},
			{Header: "Status", Extract: func(p domain.ChannelPartner) string { return domain.StringOr(p.Status, "Unknown") }},
		},
	}
}

func leaseScreen(name, title, endpoint, exportPrefix string) listview.Screen[domain.Lease] {
	return listview.Screen[domain.Lease]{
		Name:         name,
		Title:        title,
		Endpoint:     endpoint,
		ExportPrefix: exportPrefix,
		SearchFields: func(l domain.Lease) []string {
			return []string{domain.StringOr(l.FileName, ""), domain.UserName(l.Lessee)}
		},
		FilterFields: map[string]func(domain.Lease) string{
			"status": func(l domain.Lease) string { return domain.StringOr(l.Status, "") },
			"region": func(l domain.Lease) string { return domain.RegionName(l.Region) },
		},
		Validity: domain.Lease.ValidityAt,
		Columns: []tabular.Column[domain.Lease]{
			{Header: "File", Extract: func(l domain.Lease) string { return domain.StringOr(l.FileName, "N/A") }},
			{Header: "Lessee", Extract: func(l domain.Lease) string { return domain.UserName(l.Lessee) }},
			{Header: "Region", Extract: func(l domain.Lease) string { return domain.RegionName(l.Region) }},
			{Header: "Start", Extract: func(l domain.Lease) string { return domain.DateOnly(l.StartDate) }},
			{Header: "Expires", Extract: func(l domain.Lease) string { return domain.DateOnly(l.ExpiryDate) }},
			{Header: "Status", Extract: func(l domain.Lease) string { return domain.StringOr(l.Status, "Unknown") }},
		},
	}
}

// userReportScreen lists files grouped under their owners for the per-user
// report; rows stay File records, the upstream endpoint does the grouping.
func userReportScreen() listview.Screen[domain.File] {
	screen := fileScreen("user-reports", "User Reports", "/reports/user-files", "user-report")
	screen.SearchFields = func(f domain.File) []string {
		return []string{f.Name, domain.UserName(f.Owner)}
	}
	return screen
}
