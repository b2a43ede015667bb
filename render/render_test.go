package render_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jcoliz/gherkingen/models"
	"github.com/jcoliz/gherkingen/render"
)

type account struct {
	Name string
}

var _ = Describe("Render", func() {
	It("substitutes a simple variable", func() {
		out, err := render.Render("hello {{Name}}!", struct{ Name string }{Name: "world"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("hello world!"))
	})

	It("looks up keys case-insensitively", func() {
		out, err := render.Render("{{NAME}}-{{name}}-{{NaMe}}", struct{ Name string }{Name: "x"})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("x-x-x"))
	})

	It("ignores comments", func() {
		out, err := render.Render("a{{! this is dropped }}b", nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("ab"))
	})

	It("iterates a section over a slice of structs, rebinding context", func() {
		tmpl := "{{#Accounts}}({{Name}}){{/Accounts}}"
		data := struct{ Accounts []account }{Accounts: []account{{Name: "a"}, {Name: "b"}}}

		out, err := render.Render(tmpl, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("(a)(b)"))
	})

	It("iterates a section over a string slice using the dot key", func() {
		tmpl := "{{#Names}}[{{.}}]{{/Names}}"
		data := struct{ Names []string }{Names: []string{"x", "y"}}

		out, err := render.Render(tmpl, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("[x][y]"))
	})

	It("skips an empty section entirely", func() {
		tmpl := "before{{#Accounts}}({{Name}}){{/Accounts}}after"
		data := struct{ Accounts []account }{}

		out, err := render.Render(tmpl, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("beforeafter"))
	})

	It("renders an inverted section only when the key is falsy", func() {
		tmpl := "{{^Accounts}}none{{/Accounts}}"
		data := struct{ Accounts []account }{}

		out, err := render.Render(tmpl, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("none"))
	})

	It("falls through to an outer context from inside a section", func() {
		tmpl := "{{#Accounts}}{{Owner}}:{{Name}} {{/Accounts}}"
		data := struct {
			Owner    string
			Accounts []account
		}{Owner: "root", Accounts: []account{{Name: "a"}}}

		out, err := render.Render(tmpl, data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("root:a "))
	})

	It("treats an OrderedSet as an iterable section", func() {
		usings := models.NewOrderedSet()
		usings.Add("N.One")
		usings.Add("N.Two")

		tmpl := "{{#Usings}}using {{.}};\n{{/Usings}}"
		out, err := render.Render(tmpl, struct{ Usings *models.OrderedSet }{Usings: usings})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("using N.One;\nusing N.Two;\n"))
	})

	It("rejects a template with a mismatched close tag", func() {
		_, err := render.Render("{{#A}}x{{/B}}", struct{ A bool }{A: true})
		Expect(err).To(HaveOccurred())
	})

	It("rejects a template with an unclosed section", func() {
		_, err := render.Render("{{#A}}x", struct{ A bool }{A: true})
		Expect(err).To(HaveOccurred())
	})

	It("renders a whole feature's worth of CRIF end to end", func() {
		feature := &models.Feature{
			Usings:      models.NewOrderedSet(),
			Classes:     models.NewOrderedSet(),
			FeatureName: "Accounts",
			Rules: []*models.Rule{
				{
					Name: "All scenarios",
					Scenarios: []*models.Scenario{
						{
							Name: "opens an account",
							Steps: []*models.Step{
								{Owner: "AccountSteps", Method: "IHaveAnAccountNamed", Arguments: []models.Argument{{Value: `"Ski Village"`, IsLast: true}}},
							},
						},
					},
				},
			},
		}
		feature.Usings.Add("N.Account")
		feature.Classes.Add("AccountSteps")

		tmpl := "namespace {{Namespace}} {\n{{#Rules}}{{#Scenarios}}void {{Name}}() {\n{{#Steps}}  {{Owner}}.{{Method}}({{#Arguments}}{{Value}}{{^IsLast}}, {{/IsLast}}{{/Arguments}});\n{{/Steps}}}\n{{/Scenarios}}{{/Rules}}}\n"

		out, err := render.Render(tmpl, feature)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("namespace  {\nvoid opens an account() {\n  AccountSteps.IHaveAnAccountNamed(\"Ski Village\");\n}\n}\n"))
	})
})
