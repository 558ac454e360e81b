package bubbletea

// User-facing texts.
const (
	msgLoginRejected  = "Username atau password salah"
	msgLoginOffline   = "Gagal terhubung ke server. Coba lagi nanti."
	msgRegisterFailed = "Registrasi gagal. Username mungkin sudah dipakai."
	msgOffline        = "Terjadi kesalahan koneksi."
	msgRegistered     = "Registrasi berhasil! Silakan masuk."
	msgSessionExpired = "Sesi Anda telah berakhir. Silakan masuk kembali."
	msgLoggedOut      = "Anda telah keluar."

	msgAccessDenied     = "Akses Ditolak! Anda bukan Admin."
	msgUsersLoadFailed  = "Gagal memuat data user."
	msgUserUpdated      = "Data user diperbarui!"
	msgUserUpdateFailed = "Gagal update user"
	msgUserDeleted      = "User berhasil dihapus"
	msgUserDeleteFailed = "Gagal menghapus user"

	msgProfileUpdated = "Berhasil diperbarui! Silakan login ulang untuk melihat perubahan."
	msgProfileFailed  = "Gagal memperbarui profil."

	msgTyping = "Sedang mengetik..."
)
