package molwt

// Element is one entry of the periodic table used for weight calculations.
type Element struct {
	Symbol       string
	Name         string
	AtomicNumber int
	Weight       float64
}

// Standard atomic weights (IUPAC, conventional values) of the elements that
// show up in zeolite and oxide synthesis recipes.
var elements = map[string]Element{
	"H":  {"H", "Hydrogen", 1, 1.008},
	"He": {"He", "Helium", 2, 4.0026},
	"Li": {"Li", "Lithium", 3, 6.94},
	"Be": {"Be", "Beryllium", 4, 9.0122},
	"B":  {"B", "Boron", 5, 10.81},
	"C":  {"C", "Carbon", 6, 12.011},
	"N":  {"N", "Nitrogen", 7, 14.007},
	"O":  {"O", "Oxygen", 8, 15.999},
	"F":  {"F", "Fluorine", 9, 18.998},
	"Ne": {"Ne", "Neon", 10, 20.180},
	"Na": {"Na", "Sodium", 11, 22.990},
	"Mg": {"Mg", "Magnesium", 12, 24.305},
	"Al": {"Al", "Aluminium", 13, 26.982},
	"Si": {"Si", "Silicon", 14, 28.085},
	"P":  {"P", "Phosphorus", 15, 30.974},
	"S":  {"S", "Sulfur", 16, 32.06},
	"Cl": {"Cl", "Chlorine", 17, 35.45},
	"Ar": {"Ar", "Argon", 18, 39.948},
	"K":  {"K", "Potassium", 19, 39.098},
	"Ca": {"Ca", "Calcium", 20, 40.078},
	"Sc": {"Sc", "Scandium", 21, 44.956},
	"Ti": {"Ti", "Titanium", 22, 47.867},
	"V":  {"V", "Vanadium", 23, 50.942},
	"Cr": {"Cr", "Chromium", 24, 51.996},
	"Mn": {"Mn", "Manganese", 25, 54.938},
	"Fe": {"Fe", "Iron", 26, 55.845},
	"Co": {"Co", "Cobalt", 27, 58.933},
	"Ni": {"Ni", "Nickel", 28, 58.693},
	"Cu": {"Cu", "Copper", 29, 63.546},
	"Zn": {"Zn", "Zinc", 30, 65.38},
	"Ga": {"Ga", "Gallium", 31, 69.723},
	"Ge": {"Ge", "Germanium", 32, 72.630},
	"As": {"As", "Arsenic", 33, 74.922},
	"Se": {"Se", "Selenium", 34, 78.971},
	"Br": {"Br", "Bromine", 35, 79.904},
	"Kr": {"Kr", "Krypton", 36, 83.798},
	"Rb": {"Rb", "Rubidium", 37, 85.468},
	"Sr": {"Sr", "Strontium", 38, 87.62},
	"Y":  {"Y", "Yttrium", 39, 88.906},
	"Zr": {"Zr", "Zirconium", 40, 91.224},
	"Nb": {"Nb", "Niobium", 41, 92.906},
	"Mo": {"Mo", "Molybdenum", 42, 95.95},
	"Ag": {"Ag", "Silver", 47, 107.87},
	"Cd": {"Cd", "Cadmium", 48, 112.41},
	"In": {"In", "Indium", 49, 114.82},
	"Sn": {"Sn", "Tin", 50, 118.71},
	"Sb": {"Sb", "Antimony", 51, 121.76},
	"Te": {"Te", "Tellurium", 52, 127.60},
	"I":  {"I", "Iodine", 53, 126.90},
	"Xe": {"Xe", "Xenon", 54, 131.29},
	"Cs": {"Cs", "Caesium", 55, 132.91},
	"Ba": {"Ba", "Barium", 56, 137.33},
	"La": {"La", "Lanthanum", 57, 138.91},
	"Ce": {"Ce", "Cerium", 58, 140.12},
	"Hf": {"Hf", "Hafnium", 72, 178.49},
	"Ta": {"Ta", "Tantalum", 73, 180.95},
	"W":  {"W", "Tungsten", 74, 183.84},
	"Pt": {"Pt", "Platinum", 78, 195.08},
	"Au": {"Au", "Gold", 79, 196.97},
	"Hg": {"Hg", "Mercury", 80, 200.59},
	"Pb": {"Pb", "Lead", 82, 207.2},
	"Bi": {"Bi", "Bismuth", 83, 208.98},
	"U":  {"U", "Uranium", 92, 238.03},
}

// Lookup returns the element with the given symbol.
func Lookup(symbol string) (Element, bool) {
	el, ok := elements[symbol]
	return el, ok
}
