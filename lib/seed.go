package employeedb

const createTableSQL = `
CREATE TABLE IF NOT EXISTS Employees (
	Id INTEGER PRIMARY KEY AUTOINCREMENT,
	Name TEXT NOT NULL,
	Department TEXT NOT NULL,
	Email TEXT NOT NULL UNIQUE
)`

const seedSQL = "INSERT OR IGNORE INTO Employees (Name, Department, Email) VALUES (?, ?, ?)"

// SeedEmployees is the fixed demo dataset inserted by Initialize.
// Ids are assigned by the store.
var SeedEmployees = []Employee{
	{Name: "Tharun Iyer", Department: "Finance", Email: "tharun.iyer@example.com"},
	{Name: "Deepa Rao", Department: "IT", Email: "deepa.rao@example.com"},
	{Name: "Ramya Subramanian", Department: "IT", Email: "ramya.subramanian@example.com"},
	{Name: "Lavanya Shetty", Department: "IT", Email: "lavanya.shetty@example.com"},
	{Name: "Ishaan Subramanian", Department: "HR", Email: "ishaan.subramanian@example.com"},
	{Name: "Sathish Rao", Department: "HR", Email: "sathish.rao@example.com"},
	{Name: "Charan Reddy", Department: "IT", Email: "charan.reddy@example.com"},
	{Name: "Harini Subramanian", Department: "IT", Email: "harini.subramanian@example.com"},
	{Name: "Bhavana Srinivasan", Department: "IT", Email: "bhavana.srinivasan@example.com"},
	{Name: "Deepa Iyer", Department: "HR", Email: "deepa.iyer@example.com"},
	{Name: "Vignesh Reddy", Department: "IT", Email: "vignesh.reddy@example.com"},
	{Name: "Yamini Krishnan", Department: "Finance", Email: "yamini.krishnan@example.com"},
	{Name: "Manoj Pillai", Department: "IT", Email: "manoj.pillai@example.com"},
	{Name: "Bhavana Rao", Department: "HR", Email: "bhavana.rao@example.com"},
	{Name: "Tharun Naidu", Department: "Finance", Email: "tharun.naidu@example.com"},
	{Name: "Sathish Krishnan", Department: "Finance", Email: "sathish.krishnan@example.com"},
	{Name: "Vignesh Gopal", Department: "HR", Email: "vignesh.gopal@example.com"},
	{Name: "Yamini Das", Department: "IT", Email: "yamini.das@example.com"},
	{Name: "Usha Menon", Department: "HR", Email: "usha.menon@example.com"},
	{Name: "Pranav Reddy", Department: "HR", Email: "pranav.reddy@example.com"},
	{Name: "Oviya Ilango", Department: "HR", Email: "oviya.ilango@example.com"},
	{Name: "Bhargavi Natarajan", Department: "IT", Email: "bhargavi.natarajan@example.com"},
	{Name: "Ulaganathan Eashwaran", Department: "HR", Email: "ulaganathan.eashwaran@example.com"},
	{Name: "Nandhini Loganathan", Department: "Finance", Email: "nandhini.loganathan@example.com"},
	{Name: "Yugendran Ilango", Department: "HR", Email: "yugendran.ilango@example.com"},
	{Name: "Dinesh Jagadeesh", Department: "Finance", Email: "dinesh.jagadeesh@example.com"},
	{Name: "Sharanya Natarajan", Department: "HR", Email: "sharanya.natarajan@example.com"},
	{Name: "Sharanya Zachariah", Department: "HR", Email: "sharanya.zachariah@example.com"},
	{Name: "Lakshmi Ranganathan", Department: "HR", Email: "lakshmi.ranganathan@example.com"},
	{Name: "Ulaganathan Jagadeesh", Department: "IT", Email: "ulaganathan.jagadeesh@example.com"},
	{Name: "Lakshmi Thangaraj", Department: "Finance", Email: "lakshmi.thangaraj@example.com"},
	{Name: "Revansh Hariharan", Department: "HR", Email: "revansh.hariharan@example.com"},
	{Name: "Ajay Zachariah", Department: "Finance", Email: "ajay.zachariah@example.com"},
	{Name: "Ulaganathan Balaji", Department: "Finance", Email: "ulaganathan.balaji@example.com"},
	{Name: "Ulaganathan Loganathan", Department: "IT", Email: "ulaganathan.loganathan@example.com"},
	{Name: "Thamizh Ranganathan", Department: "Finance", Email: "thamizh.ranganathan@example.com"},
	{Name: "Mahesh Natarajan", Department: "HR", Email: "mahesh.natarajan@example.com"},
	{Name: "Bhargavi Darshan", Department: "Finance", Email: "bhargavi.darshan@example.com"},
	{Name: "Oviya Sekhar", Department: "IT", Email: "oviya.sekhar@example.com"},
	{Name: "Varun Yegneswaran", Department: "Finance", Email: "varun.yegneswaran@example.com"},
	{Name: "Oviya Udhayakumar", Department: "IT", Email: "oviya.udhayakumar@example.com"},
	{Name: "Keerthi Muthuraj", Department: "IT", Email: "keerthi.muthuraj@example.com"},
	{Name: "Jayanth Natarajan", Department: "HR", Email: "jayanth.natarajan@example.com"},
}
