package batch

import "testing"

func TestComponentLabels(t *testing.T) {
	t.Parallel()

	c := Component{Name: "Alumina", Formula: "Al2O3", MolWt: 101.961, Moles: 2}
	if got := c.Label(); got != "Alumina" {
		t.Fatalf("Label() = %q, want %q", got, "Alumina")
	}
	if got := c.HTMLLabel(); got != "Al<sub>2</sub>O<sub>3</sub>" {
		t.Fatalf("HTMLLabel() = %q", got)
	}
	if got := c.Mass(); got != 203.922 {
		t.Fatalf("Mass() = %v, want 203.922", got)
	}

	c.ShortName = "None"
	if got := c.Label(); got != "Alumina" {
		t.Fatalf("Label() with placeholder short name = %q", got)
	}
	c.ShortName = "A"
	if got := c.HTMLLabel(); got != "A" {
		t.Fatalf("HTMLLabel() = %q, want %q", got, "A")
	}
}

func TestChemicalLabelsAndQuantities(t *testing.T) {
	t.Parallel()

	c := Chemical{Name: "Sodium hydroxide", Formula: "NaOH", Kind: Reactant, MolWt: 39.997, Concentration: 0.98, Mass: 39.997}
	if got := c.HTMLLabel(); got != "NaOH (98.0%)" {
		t.Fatalf("HTMLLabel() = %q", got)
	}
	if got := c.Moles(); got != 1 {
		t.Fatalf("Moles() = %v, want 1", got)
	}
	if got := c.ActiveMass(); got != 39.997*0.98 {
		t.Fatalf("ActiveMass() = %v", got)
	}
	if _, ok := c.Volume(); ok {
		t.Fatal("solid chemical should have no volume")
	}

	ludox := Chemical{Kind: Mixture, Concentration: 0.4, Mass: 30, Density: 1.5, PhysicalForm: "Liquid"}
	if got := ludox.ActiveMass(); got != 30 {
		t.Fatalf("mixture ActiveMass() = %v, want 30", got)
	}
	if v, ok := ludox.Volume(); !ok || v != 20 {
		t.Fatalf("Volume() = %v, %v; want 20, true", v, ok)
	}
}

func TestFormulaRendering(t *testing.T) {
	t.Parallel()

	if got := TeXFormula("(C4H12N)2O"); got != "(C$_{4}$H$_{12}$N)$_{2}$O" {
		t.Fatalf("TeXFormula() = %q", got)
	}
	if got := HTMLFormula("H2O"); got != "H<sub>2</sub>O" {
		t.Fatalf("HTMLFormula() = %q", got)
	}
}

func TestMolesFromMassWithoutMolWt(t *testing.T) {
	t.Parallel()

	if got := MolesFromMass(10, 0); got != 0 {
		t.Fatalf("MolesFromMass(10, 0) = %v, want 0", got)
	}
}
