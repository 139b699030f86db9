package batch

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var errMemNotFound = errors.New("not found")

// memRepo is an in-memory Repository used by the package tests.
type memRepo struct {
	components map[uint]Component
	chemicals  map[uint]Chemical
	links      map[uint][]Link
	waterCalls int
	failLinks  error
}

func newMemRepo() *memRepo {
	return &memRepo{
		components: map[uint]Component{},
		chemicals:  map[uint]Chemical{},
		links:      map[uint][]Link{},
	}
}

func (m *memRepo) addComponent(c Component) Component {
	m.components[c.ID] = c
	return c
}

func (m *memRepo) addChemical(c Chemical, links map[uint]float64) Chemical {
	m.chemicals[c.ID] = c
	ids := make([]uint, 0, len(links))
	for id := range links {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		m.links[c.ID] = append(m.links[c.ID], Link{
			BatchID:     uint(len(m.links[c.ID]) + 1),
			ChemicalID:  c.ID,
			Coefficient: links[id],
			Component:   m.components[id],
		})
	}
	return c
}

func (m *memRepo) GetComponent(_ context.Context, id uint) (Component, error) {
	c, ok := m.components[id]
	if !ok {
		return Component{}, fmt.Errorf("component %d: %w", id, errMemNotFound)
	}
	return c, nil
}

func (m *memRepo) GetChemical(_ context.Context, id uint) (Chemical, error) {
	c, ok := m.chemicals[id]
	if !ok {
		return Chemical{}, fmt.Errorf("chemical %d: %w", id, errMemNotFound)
	}
	return c, nil
}

func (m *memRepo) LinksForChemical(_ context.Context, chemicalID uint, componentIDs []uint) ([]Link, error) {
	if m.failLinks != nil {
		return nil, m.failLinks
	}
	if componentIDs == nil {
		return m.links[chemicalID], nil
	}
	wanted := map[uint]bool{}
	for _, id := range componentIDs {
		wanted[id] = true
	}
	var out []Link
	for _, link := range m.links[chemicalID] {
		if wanted[link.Component.ID] {
			out = append(out, link)
		}
	}
	return out, nil
}

func (m *memRepo) FindChemicalByFormula(_ context.Context, formula string) (Chemical, error) {
	if formula == WaterFormula {
		m.waterCalls++
	}
	chemicals, _ := m.ListChemicals(context.Background(), nil)
	for _, c := range chemicals {
		if c.Formula == formula {
			return c, nil
		}
	}
	return Chemical{}, fmt.Errorf("chemical %s: %w", formula, errMemNotFound)
}

func (m *memRepo) FindComponentByFormula(_ context.Context, formula string) (Component, error) {
	for _, c := range m.components {
		if c.Formula == formula {
			return c, nil
		}
	}
	return Component{}, fmt.Errorf("component %s: %w", formula, errMemNotFound)
}

func (m *memRepo) ChemicalIDsForComponent(_ context.Context, componentID uint) ([]uint, error) {
	var ids []uint
	for chemID, links := range m.links {
		for _, link := range links {
			if link.Component.ID == componentID {
				ids = append(ids, chemID)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (m *memRepo) ListComponents(_ context.Context, category string) ([]Component, error) {
	var out []Component
	for _, c := range m.components {
		if category == "" || c.Category == category {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) ListChemicals(_ context.Context, _ []uint) ([]Chemical, error) {
	var out []Chemical
	for _, c := range m.chemicals {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

const (
	idNa2O uint = iota + 1
	idK2O
	idAl2O3
	idSiO2
	idH2O
	idTMA2O
)

const (
	idNaOH uint = iota + 1
	idKOH
	idSilica
	idAlkoxide
	idWater
	idLudox
	idTMAOH
)

// offretiteRepo holds the reagents of the offretite recipe used across the tests.
func offretiteRepo() *memRepo {
	m := newMemRepo()
	m.addComponent(Component{ID: idNa2O, Name: "Sodium oxide", Formula: "Na2O", MolWt: 61.979})
	m.addComponent(Component{ID: idK2O, Name: "Potassium oxide", Formula: "K2O", MolWt: 94.196})
	m.addComponent(Component{ID: idAl2O3, Name: "Alumina", Formula: "Al2O3", MolWt: 101.961})
	m.addComponent(Component{ID: idSiO2, Name: "Silica", Formula: "SiO2", MolWt: 60.084})
	m.addComponent(Component{ID: idH2O, Name: "Water", Formula: "H2O", MolWt: 18.015})
	m.addComponent(Component{ID: idTMA2O, Name: "Tetramethylammonium oxide", Formula: "(C4H12N)2O", MolWt: 164.293, Category: "template"})

	m.addChemical(Chemical{ID: idNaOH, Name: "Sodium hydroxide", Formula: "NaOH", Kind: Reactant, MolWt: 39.997, Concentration: 0.98},
		map[uint]float64{idNa2O: 0.5, idH2O: 0.5})
	m.addChemical(Chemical{ID: idKOH, Name: "Potassium hydroxide", Formula: "KOH", Kind: Reactant, MolWt: 56.106, Concentration: 0.87},
		map[uint]float64{idK2O: 0.5, idH2O: 0.5})
	m.addChemical(Chemical{ID: idSilica, Name: "Fumed silica", Formula: "SiO2", Kind: Reactant, MolWt: 60.084, Concentration: 1.0},
		map[uint]float64{idSiO2: 1.0})
	m.addChemical(Chemical{ID: idAlkoxide, Name: "Aluminium isopropoxide", Formula: "Al(C3H7O)3", Kind: Reactant, MolWt: 204.246, Concentration: 0.98},
		map[uint]float64{idAl2O3: 0.5, idH2O: -1.5})
	m.addChemical(Chemical{ID: idWater, Name: "Water", Formula: "H2O", Kind: Reactant, MolWt: 18.015, Concentration: 1.0},
		map[uint]float64{idH2O: 1.0})
	m.addChemical(Chemical{ID: idLudox, Name: "Ludox AS-40", Formula: "SiO2", Kind: Mixture, MolWt: 60.084, Concentration: 0.4},
		map[uint]float64{idSiO2: 0.4, idH2O: 0.6})
	m.addChemical(Chemical{ID: idTMAOH, Name: "Tetramethylammonium hydroxide", Formula: "C4H13NO", Kind: Solution, MolWt: 91.154, Concentration: 0.25},
		map[uint]float64{idTMA2O: 0.5, idH2O: 0.5})
	return m
}

func (m *memRepo) selectComponents(moles map[uint]float64, order ...uint) []Component {
	out := make([]Component, 0, len(order))
	for _, id := range order {
		out = append(out, m.components[id].WithMoles(moles[id]))
	}
	return out
}

func (m *memRepo) selectChemicals(order ...uint) []Chemical {
	out := make([]Chemical, 0, len(order))
	for _, id := range order {
		out = append(out, m.chemicals[id])
	}
	return out
}
