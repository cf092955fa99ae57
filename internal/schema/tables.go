package schema

import "inspection-back/internal/models"

func text[T any](name string, value func(*T) *string) Field[T] {
	return Field[T]{Name: name, MaxLength: DefaultMaxLength, Required: true, Value: value}
}

var ClientSchema = MustNew("client", false,
	text("name", func(c *models.Client) *string { return &c.Name }),
	text("location", func(c *models.Client) *string { return &c.Location }),
	text("logo", func(c *models.Client) *string { return &c.Logo }),
)

// JobSchema rejects blank names, the same as nested job descriptors.
var JobSchema = MustNew("job", false,
	Field[models.Job]{Name: "name", MinLength: 1, MaxLength: DefaultMaxLength, Required: true, Value: func(j *models.Job) *string { return &j.Name }},
)

// ReportSchema lists the inspection fields in their canonical order.
var ReportSchema = MustNew("report", true,
	text("job_id", func(r *models.Report) *string { return &r.JobID }),
	text("clients", func(r *models.Report) *string { return &r.Clients }),
	text("client_logo", func(r *models.Report) *string { return &r.ClientLogo }),
	text("location", func(r *models.Report) *string { return &r.Location }),
	text("year", func(r *models.Report) *string { return &r.Year }),
	text("month", func(r *models.Report) *string { return &r.Month }),
	text("initial", func(r *models.Report) *string { return &r.Initial }),
	text("po_num", func(r *models.Report) *string { return &r.PoNum }),
	text("hub", func(r *models.Report) *string { return &r.Hub }),
	text("platform_location", func(r *models.Report) *string { return &r.PlatformLocation }),
	text("survey_date", func(r *models.Report) *string { return &r.SurveyDate }),
	text("inspection_by", func(r *models.Report) *string { return &r.InspectionBy }),
	text("valve_tag_no", func(r *models.Report) *string { return &r.ValveTagNo }),
	text("valve_description", func(r *models.Report) *string { return &r.ValveDescription }),
	text("valve_type", func(r *models.Report) *string { return &r.ValveType }),
	text("functions", func(r *models.Report) *string { return &r.Functions }),
	text("valve_size", func(r *models.Report) *string { return &r.ValveSize }),
	text("valve_make", func(r *models.Report) *string { return &r.ValveMake }),
	text("actuator_make", func(r *models.Report) *string { return &r.ActuatorMake }),
	text("valve_photo", func(r *models.Report) *string { return &r.ValvePhoto }),
	text("p_and_id_no", func(r *models.Report) *string { return &r.PAndIDNo }),
	text("mal_sof", func(r *models.Report) *string { return &r.MalSof }),
	text("mal_sof_others", func(r *models.Report) *string { return &r.MalSofOthers }),
	text("mal", func(r *models.Report) *string { return &r.Mal }),
	text("mal_warn", func(r *models.Report) *string { return &r.MalWarn }),
	text("fluid_type", func(r *models.Report) *string { return &r.FluidType }),
	text("presure_upstream", func(r *models.Report) *string { return &r.PresureUpstream }),
	text("pressure_downstream", func(r *models.Report) *string { return &r.PressureDownstream }),
	text("flow_direction", func(r *models.Report) *string { return &r.FlowDirection }),
	text("u3", func(r *models.Report) *string { return &r.U3 }),
	text("u2", func(r *models.Report) *string { return &r.U2 }),
	text("u1", func(r *models.Report) *string { return &r.U1 }),
	text("va", func(r *models.Report) *string { return &r.Va }),
	text("vb", func(r *models.Report) *string { return &r.Vb }),
	text("vc", func(r *models.Report) *string { return &r.Vc }),
	text("vd", func(r *models.Report) *string { return &r.Vd }),
	text("d1", func(r *models.Report) *string { return &r.D1 }),
	text("d2", func(r *models.Report) *string { return &r.D2 }),
	text("d3", func(r *models.Report) *string { return &r.D3 }),
	text("result", func(r *models.Report) *string { return &r.Result }),
	text("estimated_leak_rate", func(r *models.Report) *string { return &r.EstimatedLeakRate }),
	text("color_code", func(r *models.Report) *string { return &r.ColorCode }),
	text("reason_not_tested", func(r *models.Report) *string { return &r.ReasonNotTested }),
	text("discussion_result", func(r *models.Report) *string { return &r.DiscussionResult }),
	text("recommended_action", func(r *models.Report) *string { return &r.RecommendedAction }),
	text("maintenance_his", func(r *models.Report) *string { return &r.MaintenanceHis }),
	text("avail_nameplate_tagno", func(r *models.Report) *string { return &r.AvailNameplateTagNo }),
	text("presence_downstream", func(r *models.Report) *string { return &r.PresenceDownstream }),
	text("leak_visibility_body", func(r *models.Report) *string { return &r.LeakVisibilityBody }),
	text("severe_corrosion_flanges", func(r *models.Report) *string { return &r.SevereCorrosionFlanges }),
	text("visibility_crack_nuts_bolt", func(r *models.Report) *string { return &r.VisibilityCrackNutsBolt }),
)

// UserSchema covers the writable account fields. The password is hashed by
// the caller after Apply.
var UserSchema = MustNew("user", false,
	Field[models.User]{Name: "email", MaxLength: 255, Required: true, Value: func(u *models.User) *string { return &u.Email }},
	Field[models.User]{Name: "password", MaxLength: 128, Required: true, Value: func(u *models.User) *string { return &u.Password }},
	Field[models.User]{Name: "name", MaxLength: 255, Required: true, Value: func(u *models.User) *string { return &u.Name }},
)
