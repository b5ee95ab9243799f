package contacts

import (
	"strings"

	"github.com/neboloop/nebo-contacts/internal/osascript"
)

// helpers is shared JavaScript for Automation code. Missing values are turned
// into empty strings here so the store's "missing value" never leaks out.
const helpers = `function str(v) { return (v === null || v === undefined) ? "" : String(v); }
function labeled(items) {
	return items.map(function (i) { return { label: str(i.label()) || "other", value: str(i.value()) }; });
}
function isoDate(d) {
	if (!d) return "";
	var pad = function (n) { return (n < 10 ? "0" : "") + n; };
	return d.getFullYear() + "-" + pad(d.getMonth() + 1) + "-" + pad(d.getDate());
}
function groupNames(p) {
	var id = p.id();
	return app.groups().filter(function (g) { return g.people.whose({ id: id })().length > 0; })
		.map(function (g) { return str(g.name()); });
}
function contactJSON(p, full) {
	var first = str(p.firstName()), last = str(p.lastName());
	return {
		id: p.id(), firstName: first, lastName: last, fullName: first + " " + last,
		nickname: str(p.nickname()), company: str(p.organization()), jobTitle: str(p.jobTitle()),
		department: str(p.department()), note: str(p.note()), birthday: isoDate(p.birthDate()),
		phones: labeled(p.phones()), emails: labeled(p.emails()), addresses: [],
		groups: full ? groupNames(p) : []
	};
}`

func newScript(appName string) *osascript.Script {
	return osascript.NewScript().Linef("var app = Application(%s);", appName)
}

func permissionScript(appName string) *osascript.Script {
	return newScript(appName).Line("app.people.length;")
}

func listContactsScript(appName string, opts ListOptions) *osascript.Script {
	s := newScript(appName).Line(helpers).Line("(function () {")
	s.Linef("\tvar limit = %d;", opts.Limit)
	if opts.Group != "" {
		s.Linef("\tvar people = app.groups.byName(%s).people();", opts.Group)
	} else {
		s.Line("\tvar people = app.people();")
	}
	return s.Line(`	var out = [];
	for (var i = 0; i < people.length && out.length < limit; i++) {
		out.push(contactJSON(people[i], true));
	}
	return JSON.stringify(out);
})();`)
}

func getContactScript(appName, id string) *osascript.Script {
	return newScript(appName).Line(helpers).Line("(function () {").
		Linef("\tvar p = app.people.byId(%s);", id).
		Line(`	try { p.id(); } catch (e) { return null; }
	return JSON.stringify(contactJSON(p, true));
})();`)
}

// searchContactsScript matches names, company and nickname first; phones and
// emails are only consulted when none of those hit.
func searchContactsScript(appName string, opts SearchOptions) *osascript.Script {
	return newScript(appName).Line(helpers).Line("(function () {").
		Linef("\tvar query = %s;", strings.ToLower(opts.Query)).
		Linef("\tvar limit = %d;", opts.Limit).
		Line(`	var has = function (v) { return str(v).toLowerCase().indexOf(query) !== -1; };
	var people = app.people();
	var out = [];
	for (var i = 0; i < people.length && out.length < limit; i++) {
		var p = people[i];
		var hit = has(p.firstName()) || has(p.lastName()) || has(p.organization()) || has(p.nickname());
		if (!hit) hit = p.phones().some(function (ph) { return str(ph.value()).indexOf(query) !== -1; });
		if (!hit) hit = p.emails().some(function (em) { return has(em.value()); });
		if (hit) out.push(contactJSON(p, false));
	}
	return JSON.stringify(out);
})();`)
}

func createContactScript(appName string, c NewContact) *osascript.Script {
	s := newScript(appName).Line("(function () {").
		Linef("\tvar person = app.Person({ firstName: %s, lastName: %s, organization: %s, jobTitle: %s, note: %s });",
			c.FirstName, c.LastName, c.Company, c.JobTitle, c.Note).
		Line("\tapp.people.push(person);")
	for _, ph := range c.Phones {
		s.Linef("\tperson.phones.push(app.Phone({ label: %s, value: %s }));", labelOrDefault(ph.Label), ph.Value)
	}
	for _, em := range c.Emails {
		s.Linef("\tperson.emails.push(app.Email({ label: %s, value: %s }));", labelOrDefault(em.Label), em.Value)
	}
	return s.Line(`	app.save();
	return person.id();
})();`)
}

func updateContactScript(appName, id string, u ContactUpdate) *osascript.Script {
	s := newScript(appName).Line("(function () {").
		Linef("\tvar p = app.people.byId(%s);", id)
	if u.FirstName != nil {
		s.Linef("\tp.firstName = %s;", *u.FirstName)
	}
	if u.LastName != nil {
		s.Linef("\tp.lastName = %s;", *u.LastName)
	}
	if u.Company != nil {
		s.Linef("\tp.organization = %s;", *u.Company)
	}
	if u.JobTitle != nil {
		s.Linef("\tp.jobTitle = %s;", *u.JobTitle)
	}
	if u.Nickname != nil {
		s.Linef("\tp.nickname = %s;", *u.Nickname)
	}
	if u.Note != nil {
		s.Linef("\tp.note = %s;", *u.Note)
	}
	return s.Line(`	app.save();
	return "ok";
})();`)
}

func deleteContactScript(appName, id string) *osascript.Script {
	return newScript(appName).
		Linef("app.delete(app.people.byId(%s));", id).
		Line("app.save();").
		Line(`"ok";`)
}

func listGroupsScript(appName string) *osascript.Script {
	return newScript(appName).Line(helpers).Line(`JSON.stringify(app.groups().map(function (g) {
	return { id: g.id(), name: str(g.name()), contactCount: g.people().length };
}));`)
}

func createGroupScript(appName, name string) *osascript.Script {
	return newScript(appName).Line("(function () {").
		Linef("\tvar group = app.Group({ name: %s });", name).
		Line(`	app.groups.push(group);
	app.save();
	return group.id();
})();`)
}

// deleteGroupScript removes the group only; its member cards stay.
func deleteGroupScript(appName, name string) *osascript.Script {
	return newScript(appName).
		Linef("app.delete(app.groups.byName(%s));", name).
		Line("app.save();").
		Line(`"ok";`)
}

func addToGroupScript(appName, contactID, group string) *osascript.Script {
	return newScript(appName).
		Linef("var p = app.people.byId(%s);", contactID).
		Linef("var g = app.groups.byName(%s);", group).
		Line("app.add(p, { to: g });").
		Line("app.save();").
		Line(`"ok";`)
}

func removeFromGroupScript(appName, contactID, group string) *osascript.Script {
	return newScript(appName).
		Linef("var p = app.people.byId(%s);", contactID).
		Linef("var g = app.groups.byName(%s);", group).
		Line("app.remove(p, { from: g });").
		Line("app.save();").
		Line(`"ok";`)
}

func openContactScript(appName, id string) *osascript.Script {
	return newScript(appName).
		Linef("var p = app.people.byId(%s);", id).
		Line("p.id();").
		Line("app.activate();").
		Line("app.selection = [p];").
		Line(`"ok";`)
}

func labelOrDefault(label string) string {
	if label == "" {
		return defaultLabel
	}
	return label
}
